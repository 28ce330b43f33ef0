package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewRendererFallsBackToGlass(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Equal(t, VariantGlass, NewRenderer("neon", s).Name())
	assert.Equal(t, VariantCard, NewRenderer("CARD", s).Name())
}

func TestRenderersKeepText(t *testing.T) {
	for _, variant := range Variants {
		t.Run(variant, func(t *testing.T) {
			r := NewRenderer(variant, NewStyles(DarkTheme()))
			assert.Contains(t, r.Header("Crop Scan", true, 40), "Crop Scan")
			assert.Contains(t, r.Hero("hero body", 40), "hero body")
			assert.Contains(t, r.Card("card body", 40), "card body")
			assert.Contains(t, r.Info("note", 40), "note")
			assert.Contains(t, r.Button("Scan Crop", "s", true, false), "Scan Crop")
			assert.Contains(t, r.Button("Scan Crop", "s", false, true), "Scan Crop")
			assert.Contains(t, r.Bubble("hello", true, 40), "hello")
			assert.Contains(t, r.Bubble("hello", false, 40), "hello")
		})
	}
}

func TestRenderersRespectWidth(t *testing.T) {
	for _, variant := range Variants {
		r := NewRenderer(variant, NewStyles(LightTheme()))
		out := r.Card(strings.Repeat("word ", 40), 40)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 40, variant)
		}
	}
}

func TestVariantsDiffer(t *testing.T) {
	s := NewStyles(LightTheme())
	glass := NewRenderer(VariantGlass, s).Card("same", 30)
	card := NewRenderer(VariantCard, s).Card("same", 30)
	assert.NotEqual(t, glass, card)
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Recent", []string{"Crop", "Status"})
	assert.Empty(t, table.View(NewStyles(LightTheme())))

	table.AddRow("Wheat", "Treated")
	table.AddRow("Maize", "Monitoring")
	out := table.View(NewStyles(LightTheme()))
	assert.Contains(t, out, "Recent")
	assert.Contains(t, out, "Crop")
	assert.Contains(t, out, "Monitoring")
	assert.Len(t, strings.Split(out, "\n"), 5)
}

func TestLayoutConfig(t *testing.T) {
	assert.Equal(t, MaxContentWidth, NewLayoutConfig(200, 50).ContentWidth())
	assert.Equal(t, 56, NewLayoutConfig(60, 50).ContentWidth())
	assert.Equal(t, MinContentWidth, NewLayoutConfig(10, 50).ContentWidth())
	assert.Equal(t, 19, NewLayoutConfig(80, 24).BodyHeight())
	assert.True(t, NewLayoutConfig(30, 10).TooSmall())
	assert.False(t, NewLayoutConfig(80, 24).TooSmall())
}
