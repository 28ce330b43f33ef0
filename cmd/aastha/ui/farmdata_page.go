package ui

import (
	"fmt"

	"aastha/internal/locale"
	"aastha/internal/router"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FarmRecord is one past diagnosis.
type FarmRecord struct {
	Crop      locale.Text
	Diagnosis locale.Text
	Date      locale.Text
	Status    locale.Text
	Severity  string // none, moderate, high
}

// TrendPoint is one month of the health trend.
type TrendPoint struct {
	Month  string
	Health int
}

// farmTotals are the aggregate counters shown on home and farm data.
var farmTotals = struct {
	Scans, Issues, Health int
}{Scans: 12, Issues: 3, Health: 85}

var farmRecords = []FarmRecord{
	{
		Crop:      locale.Text{EN: "Wheat", PA: "ਕਣਕ"},
		Diagnosis: locale.Text{EN: "Yellow Rust", PA: "ਪੀਲੀ ਕੰਗੀ"},
		Date:      locale.Text{EN: "July 20, 2025", PA: "20 ਜੁਲਾਈ, 2025"},
		Status:    locale.Text{EN: "Treated", PA: "ਇਲਾਜ ਕੀਤਾ ਗਿਆ"},
		Severity:  "moderate",
	},
	{
		Crop:      locale.Text{EN: "Maize", PA: "ਮੱਕੀ"},
		Diagnosis: locale.Text{EN: "Blight", PA: "ਝੁਲਸਾ ਰੋਗ"},
		Date:      locale.Text{EN: "June 15, 2025", PA: "15 ਜੂਨ, 2025"},
		Status:    locale.Text{EN: "Monitoring", PA: "ਨਿਗਰਾਨੀ ਹੇਠ"},
		Severity:  "high",
	},
	{
		Crop:      locale.Text{EN: "Rice", PA: "ਚਾਵਲ"},
		Diagnosis: locale.Text{EN: "Healthy", PA: "ਸਿਹਤਮੰਦ"},
		Date:      locale.Text{EN: "May 30, 2025", PA: "30 ਮਈ, 2025"},
		Status:    locale.Text{EN: "Good", PA: "ਚੰਗਾ"},
		Severity:  "none",
	},
}

var healthTrend = []TrendPoint{
	{"Jan", 75},
	{"Feb", 80},
	{"Mar", 85},
}

var farmText = struct {
	Title, TotalScans, IssuesFound, HealthScore, Trend locale.Text
	Recent, Crop, Diagnosis, Date, Status              locale.Text
	Future, FutureBody, ScanNew, Ask, Home             locale.Text
}{
	Title:       locale.Text{EN: "My Farm Data", PA: "ਮੇਰਾ ਫਾਰਮ ਡਾਟਾ"},
	TotalScans:  locale.Text{EN: "Total Scans", PA: "ਕੁੱਲ ਸਕੈਨ"},
	IssuesFound: locale.Text{EN: "Issues Found", PA: "ਸਮੱਸਿਆਵਾਂ ਮਿਲੀਆਂ"},
	HealthScore: locale.Text{EN: "Health Score", PA: "ਸਿਹਤ ਸਕੋਰ"},
	Trend:       locale.Text{EN: "Farm Health Trend", PA: "ਫਾਰਮ ਸਿਹਤ ਦਾ ਰੁਝਾਨ"},
	Recent:      locale.Text{EN: "Recent Diagnoses", PA: "ਹਾਲ ਦੇ ਨਿਦਾਨ"},
	Crop:        locale.Text{EN: "Crop", PA: "ਫ਼ਸਲ"},
	Diagnosis:   locale.Text{EN: "Diagnosis", PA: "ਨਿਦਾਨ"},
	Date:        locale.Text{EN: "Date", PA: "ਤਾਰੀਖ"},
	Status:      locale.Text{EN: "Status", PA: "ਸਥਿਤੀ"},
	Future:      locale.Text{EN: "Future Feature", PA: "ਭਵਿੱਖ ਦੀ ਸੁਵਿਧਾ"},
	FutureBody: locale.Text{
		EN: "Advanced analytics, weather predictions, and personalized farming recommendations will be available here.",
		PA: "ਅਡਵਾਂਸ ਐਨਾਲਿਟਿਕਸ, ਮੌਸਮ ਦੀ ਭਵਿੱਖਬਾਣੀ, ਅਤੇ ਵਿਅਕਤਿਗਤ ਖੇਤੀ ਸਿਫਾਰਸ਼ਾਂ ਇੱਥੇ ਉਪਲਬਧ ਹੋਣਗੀਆਂ।",
	},
	ScanNew: locale.Text{EN: "Scan New Crop", PA: "ਨਈ ਫ਼ਸਲ ਸਕੈਨ ਕਰੋ"},
	Ask:     locale.Text{EN: "Ask Aastha", PA: "ਆਸਥਾ ਨੂੰ ਪੁੱਛੋ"},
	Home:    locale.Text{EN: "home", PA: "ਘਰ"},
}

// FarmDataPageModel shows the fixed farm history.
type FarmDataPageModel struct {
	base
	viewport viewport.Model
}

// NewFarmDataPageModel creates the farm data page for lang.
func NewFarmDataPageModel(skin *Skin, lang locale.Locale) *FarmDataPageModel {
	m := &FarmDataPageModel{
		base:     newBase(skin, lang),
		viewport: viewport.New(80, 20),
	}
	m.SetSize(80, 24)
	return m
}

func (m *FarmDataPageModel) Screen() router.Screen { return router.ScreenData }

func (m *FarmDataPageModel) Init() tea.Cmd { return nil }

func (m *FarmDataPageModel) Close() {}

// SetSize updates the size of the viewport.
func (m *FarmDataPageModel) SetSize(w, h int) {
	m.base.SetSize(w, h)
	m.viewport.Width = m.width()
	m.viewport.Height = m.layout.BodyHeight()
}

func (m *FarmDataPageModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s":
			return Navigate(string(router.ScreenScan))
		case "a":
			return Navigate(string(router.ScreenVoice))
		case "esc", "backspace", "h":
			return Navigate(string(router.ScreenHome))
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *FarmDataPageModel) content() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()

	counter := func(value string, label locale.Text, st lipgloss.Style) string {
		return r.Info(lipgloss.JoinVertical(lipgloss.Center, st.Render(value), s.Muted.Render(m.t(label))), w/3-1)
	}
	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		counter(fmt.Sprint(farmTotals.Scans), farmText.TotalScans, s.Title),
		" ",
		counter(fmt.Sprint(farmTotals.Issues), farmText.IssuesFound, s.Warning),
		" ",
		counter(fmt.Sprintf("%d%%", farmTotals.Health), farmText.HealthScore, s.Success),
	)

	bar := progress.New(
		progress.WithSolidFill(string(s.Theme.Primary)),
		progress.WithWidth(max(w-20, 10)),
		progress.WithoutPercentage(),
	)
	trend := []string{s.Large.Render("📈 " + m.t(farmText.Trend))}
	for _, p := range healthTrend {
		trend = append(trend, fmt.Sprintf("%-4s %s %3d%%", p.Month, bar.ViewAs(float64(p.Health)/100), p.Health))
	}

	table := NewSimpleTable("", []string{
		m.t(farmText.Crop), m.t(farmText.Diagnosis), m.t(farmText.Date), m.t(farmText.Status),
	})
	for _, rec := range farmRecords {
		table.AddRow(m.t(rec.Crop), m.t(rec.Diagnosis), m.t(rec.Date), m.t(rec.Status))
	}
	table.Styler = func(row, col int) lipgloss.Style {
		if col == 3 {
			return s.SeverityStyle(farmRecords[row].Severity)
		}
		return s.Body
	}

	future := r.Info(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(m.t(farmText.Future)),
		s.Muted.Render(m.t(farmText.FutureBody)),
	), w)

	return lipgloss.JoinVertical(lipgloss.Left,
		counters,
		"",
		r.Card(lipgloss.JoinVertical(lipgloss.Left, trend...), w),
		"",
		s.Large.Render(m.t(farmText.Recent)),
		table.View(s),
		"",
		future,
		"",
		r.Button(m.t(farmText.ScanNew), "s", true, false),
		r.Button(m.t(farmText.Ask), "a", false, false),
	)
}

func (m *FarmDataPageModel) View() string {
	w := m.width()
	m.viewport.SetContent(m.content())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.skin.Renderer.Header(m.t(farmText.Title), true, w),
		m.viewport.View(),
		m.footer("s", m.t(farmText.ScanNew), "a", m.t(farmText.Ask), "esc", m.t(farmText.Home)),
	)
}
