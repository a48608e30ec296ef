package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/systems"
	"github.com/ebitenui/ebitenui"
	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// HUD is the corner panel with the session counters and the spawn controls
type HUD struct {
	UI *ebitenui.UI

	// Callbacks
	OnToggle func() bool // returns whether spawning is now enabled
	OnReset  func()
	OnTest   func()

	panel        *widget.Container
	slicedLabel  *widget.Label
	freedLabel   *widget.Label
	spawnedLabel *widget.Label
	liveLabel    *widget.Label
	failedLabel  *widget.Label
	toggleButton *widget.Button

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face

	enabled bool
}

// NewHUD builds the panel. enabled is the initial spawn gate value.
func NewHUD(enabled bool, onToggle func() bool, onReset, onTest func()) *HUD {
	h := &HUD{
		OnToggle: onToggle,
		OnReset:  onReset,
		OnTest:   onTest,
		enabled:  enabled,
	}

	h.loadFonts()
	h.buildUI()

	return h
}

func (h *HUD) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	h.titleFace = &text.GoTextFace{Source: fontSource, Size: 16}
	h.normalFace = &text.GoTextFace{Source: fontSource, Size: 13}
	h.smallFace = &text.GoTextFace{Source: fontSource, Size: 11}
}

func (h *HUD) buildUI() {
	// Transparent root so the desktop shows through
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	h.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(color.RGBA{0, 0, 0, 150})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	h.panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("MEMORY NINJA", &h.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 215, 0, 255},
		}),
	))

	h.slicedLabel = h.statLabel(&h.normalFace, color.RGBA{255, 255, 255, 255})
	h.freedLabel = h.statLabel(&h.normalFace, color.RGBA{120, 255, 140, 255})
	h.spawnedLabel = h.statLabel(&h.smallFace, color.RGBA{200, 200, 200, 255})
	h.liveLabel = h.statLabel(&h.smallFace, color.RGBA{200, 200, 200, 255})
	h.failedLabel = h.statLabel(&h.smallFace, color.RGBA{255, 100, 100, 255})

	h.panel.AddChild(h.buildButtonsContainer())
	rootContainer.AddChild(h.panel)

	h.UI = &ebitenui.UI{
		Container: rootContainer,
	}
	h.SetStats(core.Stats{}, systems.Counts{})
}

func (h *HUD) statLabel(face *text.Face, clr color.Color) *widget.Label {
	label := widget.NewLabel(
		widget.LabelOpts.Text("", face, &widget.LabelColor{Idle: clr}),
	)
	h.panel.AddChild(label)
	return label
}

func (h *HUD) buildButtonsContainer() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	h.toggleButton = h.button(toggleText(h.enabled), func() {
		if h.OnToggle == nil {
			return
		}
		h.enabled = h.OnToggle()
		if textWidget := h.toggleButton.Text(); textWidget != nil {
			textWidget.Label = toggleText(h.enabled)
		}
	})
	container.AddChild(h.toggleButton)

	container.AddChild(h.button("Test fruit", func() {
		if h.OnTest != nil {
			h.OnTest()
		}
	}))

	container.AddChild(h.button("Reset", func() {
		if h.OnReset != nil {
			h.OnReset()
		}
	}))

	return container
}

func (h *HUD) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(72, 22),
		),
		widget.ButtonOpts.Image(h.buttonImage()),
		widget.ButtonOpts.Text(label, &h.smallFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func toggleText(enabled bool) string {
	if enabled {
		return "Pause"
	}
	return "Resume"
}

// SetStats refreshes the counters
func (h *HUD) SetStats(s core.Stats, live systems.Counts) {
	h.slicedLabel.Label = fmt.Sprintf("Sliced: %d", s.Sliced)
	h.freedLabel.Label = fmt.Sprintf("Freed: ~%d MB", s.FreedMB)
	h.spawnedLabel.Label = fmt.Sprintf("Spawned %d  dropped %d", s.Spawned, s.Dropped)
	h.liveLabel.Label = fmt.Sprintf("Live %d fruit  %d juice", live.Fruits, live.Juice)
	if s.NotifyFailed > 0 {
		h.failedLabel.Label = fmt.Sprintf("Failed notifications: %d", s.NotifyFailed)
	} else {
		h.failedLabel.Label = ""
	}
}

// Contains reports whether a screen point is over the panel
func (h *HUD) Contains(x, y int) bool {
	return image.Pt(x, y).In(h.panel.GetWidget().Rect)
}

func (h *HUD) Update() {
	h.UI.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.UI.Draw(screen)
}

func (h *HUD) buttonImage() *widget.ButtonImage {
	idle := eimage.NewNineSliceColor(color.RGBA{60, 60, 80, 220})
	hover := eimage.NewNineSliceColor(color.RGBA{80, 80, 100, 230})
	pressed := eimage.NewNineSliceColor(color.RGBA{40, 40, 60, 230})
	disabled := eimage.NewNineSliceColor(color.RGBA{40, 40, 40, 200})

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}
