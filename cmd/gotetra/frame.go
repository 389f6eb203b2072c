package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/viewer"
	"github.com/philipparndt/gotetra/pkg/visibility"
)

var (
	frameWidth  float64
	frameHeight float64
	frameCam    string
	frameYaw    float64
	frameSelect string
	framePNG    string
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Run one visibility pass and print every label's opacity",
	Long: `Place the camera and the solid, run the visibility and fade pass once and print the
resulting opacity and screen position of every label. --png also renders the frame.`,
	Args: cobra.NoArgs,
	Run:  runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	addViewFlags(frameCmd)
	frameCmd.Flags().StringVar(&framePNG, "png", "", "Write the rendered frame to this PNG file")
}

// addViewFlags registers the flags that place the camera and the solid
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&frameWidth, "width", viewer.DefaultWidth, "Viewport width in pixels")
	cmd.Flags().Float64Var(&frameHeight, "height", viewer.DefaultHeight, "Viewport height in pixels")
	cmd.Flags().StringVar(&frameCam, "cam", "", "Camera position as x,y,z (default from schema)")
	cmd.Flags().Float64Var(&frameYaw, "yaw", 0, "Spin the solid about the vertical axis by this many radians")
	cmd.Flags().StringVar(&frameSelect, "select", "", "Pin one face by name")
}

// applyViewFlags poses the scene from the view flags
func applyViewFlags(s *scene.Scene) error {
	state := s.State
	state.Resize(frameWidth, frameHeight)
	if frameCam != "" {
		eye, err := parseVector3(frameCam)
		if err != nil {
			return fmt.Errorf("invalid --cam: %w", err)
		}
		state.Camera.Eye = eye
	}
	if frameYaw != 0 {
		state.Body.RotateOnWorldAxis(geometry.Up, frameYaw)
	}
	if frameSelect != "" {
		if _, ok := s.Solid.FaceIndex(frameSelect); !ok {
			return fmt.Errorf("unknown face %q", frameSelect)
		}
		state.Select(frameSelect)
	}
	return nil
}

func parseVector3(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		v[i] = f
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}

func runFrame(cmd *cobra.Command, args []string) {
	s := mustLoadScene()
	if err := applyViewFlags(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res := s.Frame()

	fmt.Println("Visibility Pass")
	fmt.Println("===============")
	fmt.Printf("Camera: %s\n", formatPoint(s.State.Camera.Position()))
	if s.State.Selected != "" {
		fmt.Printf("Selected: %s\n", s.State.Selected)
	}
	fmt.Printf("Policy: %s\n\n", s.Engine.Policy().Mode)

	fmt.Printf("%-7s %-12s %-8s %-8s %s\n", "Kind", "Key", "Opacity", "Dot", "Screen")
	fmt.Println("--------------------------------------------------------------")
	printStates(res.Faces)
	printStates(res.Vertices)
	fmt.Printf("\nVisible face points: %d\n", len(res.VisibleFacePoints))

	if framePNG != "" {
		if err := writePNG(framePNG, s, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Frame written to %s\n", framePNG)
	}
}

func printStates(states []visibility.LabelState) {
	for _, st := range states {
		fmt.Printf("%-7s %-12s %-8.3f %-8.3f (%.1f, %.1f)\n",
			st.Label.Kind, st.Label.Key(), st.Opacity, st.Dot, st.Screen.X, st.Screen.Y)
	}
}

func formatPoint(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

func writePNG(path string, s *scene.Scene, res visibility.Result) error {
	cam := s.State.Camera
	img := image.NewRGBA(image.Rect(0, 0, int(cam.Width), int(cam.Height)))
	sc := viewer.NewScene(s.Solid)
	sc.DrawText = true
	sc.Draw(img, cam, s.State.Body, res)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
