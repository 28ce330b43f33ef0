package main

import (
	"fmt"
	"os"

	"aastha/cmd/aastha/shell"
	"aastha/internal/camera"
	"aastha/internal/capture"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var probeOut string

// cameraCmd groups camera diagnostics
var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Camera diagnostics",
}

// cameraProbeCmd opens the configured camera and takes one photo
var cameraProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Open the camera, take one photo and report what came back",
	Args:  cobra.NoArgs,
	RunE:  runCameraProbe,
}

func init() {
	cameraProbeCmd.Flags().StringVarP(&probeOut, "out", "o", "", "Write the captured JPEG to this file")
	cameraCmd.AddCommand(cameraProbeCmd)
}

func runCameraProbe(cmd *cobra.Command, args []string) error {
	device, err := camera.NewDevice(cameraOptions(cfg.Camera), logger)
	if err != nil {
		return err
	}

	session := capture.NewSession(device, shell.Constraints(cfg.Camera), logger)
	defer session.Stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Device:   %s\n", device.Name())

	session.Start(cmd.Context())
	if err := session.LastError(); err != nil {
		fmt.Fprintf(out, "Stream:   unavailable (%v)\n", err)
	} else {
		fmt.Fprintln(out, "Stream:   live")
	}

	img := session.TakePhoto(cmd.Context())
	if img.IsPlaceholder() {
		fmt.Fprintf(out, "Photo:    placeholder %q\n", string(img))
		if probeOut != "" {
			return fmt.Errorf("no frame captured, nothing written to %s", probeOut)
		}
		return nil
	}

	data, err := img.Bytes()
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}
	fmt.Fprintf(out, "Photo:    %s, %d bytes\n", img.MIMEType(), len(data))

	if probeOut != "" {
		if err := os.WriteFile(probeOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write photo: %w", err)
		}
		fmt.Fprintf(out, "Saved:    %s\n", probeOut)
		logger.Info("probe photo saved", zap.String("path", probeOut), zap.Int("bytes", len(data)))
	}
	return nil
}
