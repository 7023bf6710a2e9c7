package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webpconv/internal/controller"
	"webpconv/internal/logging"
	"webpconv/internal/preview"
	"webpconv/internal/processor"
)

const sidebarWidth = 40

type editField int

const (
	editNone editField = iota
	editThickness
	editPrefix
	editOutputDir
	editInputs
)

func (f editField) label() string {
	switch f {
	case editThickness:
		return "Frame thickness (px)"
	case editPrefix:
		return "Prefix"
	case editOutputDir:
		return "Output folder"
	case editInputs:
		return "Files or folder"
	default:
		return ""
	}
}

type settleMsg struct{ seq int }

type previewMsg struct {
	req  controller.RenderPreview
	text string
	err  error
}

type progressMsg processor.ProgressUpdate

type progressClosedMsg struct{}

type batchDoneMsg struct {
	run processor.BatchRun
	err error
}

// App is the interactive converter: selection browser, option editor,
// terminal preview and batch runner.
type App struct {
	state    controller.State
	renderer *preview.Renderer
	log      *logging.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	width   int
	height  int
	preview string
	pending controller.RenderPreview
	updates <-chan processor.ProgressUpdate

	editing editField
	input   string
}

func NewApp(ctx context.Context, paths []string, outputDir string, opts processor.Options, log *logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	ctx, cancel := context.WithCancel(ctx)

	state := controller.NewState(opts)
	state, _ = controller.Reduce(state, controller.FilesSelected{Paths: paths})
	state, _ = controller.Reduce(state, controller.OutputDirSelected{Dir: outputDir})

	renderer := preview.NewRenderer(0)
	renderer.AutoOrient = opts.AutoOrient

	return &App{
		state:    state,
		renderer: renderer,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State exposes the controller state, mainly for the caller's final report.
func (a *App) State() controller.State { return a.state }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		w, h := a.previewBox()
		return a, a.dispatch(controller.Resized{Width: w, Height: h})
	case settleMsg:
		return a, a.dispatch(controller.ResizeSettled{Seq: msg.seq})
	case previewMsg:
		if msg.req != a.pending {
			return a, nil
		}
		if msg.err != nil {
			a.preview = ""
			return a, a.dispatch(controller.PreviewFailed{Path: msg.req.Path, Err: msg.err})
		}
		a.preview = msg.text
		return a, nil
	case progressMsg:
		u := processor.ProgressUpdate(msg)
		if u.Result.OK() {
			a.log.Debug("converted", "index", u.Result.Index, "output", u.Result.OutputPath)
		} else {
			a.log.Debug("failed", "index", u.Result.Index, "input", u.Result.InputPath, "err", u.Result.Err)
		}
		cmd := a.dispatch(controller.BatchProgressed{Update: u})
		return a, tea.Batch(cmd, a.listen())
	case progressClosedMsg:
		return a, nil
	case batchDoneMsg:
		a.updates = nil
		if msg.err != nil {
			return a, a.dispatch(controller.BatchRejected{Err: msg.err})
		}
		a.log.Info("batch finished", "id", msg.run.ID, "ok", msg.run.Succeeded(), "failed", msg.run.Failed(), "elapsed", msg.run.Elapsed())
		return a, a.dispatch(controller.BatchFinished{Run: msg.run})
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.editing != editNone {
		return a.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		a.cancel()
		return tea.Quit
	case "n", "right", "j", "down":
		return a.dispatch(controller.NextFile{})
	case "p", "left", "k", "up":
		return a.dispatch(controller.PrevFile{})
	case "f":
		return a.dispatch(controller.FrameToggled{})
	case "c":
		return a.dispatch(controller.FrameColorSelected{Hex: NextSwatch(a.state.Options.Frame.Color)})
	case "r":
		return a.dispatch(controller.RenameModeToggled{})
	case "t":
		a.startEdit(editThickness, a.state.ThicknessInput)
	case "x":
		a.startEdit(editPrefix, a.state.Options.Prefix)
	case "o":
		a.startEdit(editOutputDir, a.state.Selection.OutputDir)
	case "a":
		a.startEdit(editInputs, "")
	case "enter":
		return a.dispatch(controller.ConvertRequested{})
	}
	return nil
}

func (a *App) startEdit(f editField, current string) {
	a.editing = f
	a.input = current
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		a.cancel()
		return tea.Quit
	case tea.KeyEsc:
		a.editing = editNone
		return nil
	case tea.KeyEnter:
		field, value := a.editing, a.input
		a.editing = editNone
		switch field {
		case editThickness:
			return a.dispatch(controller.FrameThicknessEdited{Raw: value})
		case editPrefix:
			return a.dispatch(controller.PrefixEdited{Prefix: value})
		case editOutputDir:
			return a.dispatch(controller.OutputDirSelected{Dir: strings.TrimSpace(value)})
		case editInputs:
			return a.selectInputs(strings.Fields(value))
		}
		return nil
	case tea.KeyBackspace:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
		return nil
	case tea.KeySpace:
		a.input += " "
		return nil
	case tea.KeyRunes:
		a.input += string(msg.Runes)
		return nil
	}
	return nil
}

func (a *App) selectInputs(args []string) tea.Cmd {
	if len(args) == 0 {
		return nil
	}
	paths, err := processor.CollectInputs(args, "")
	if err == nil && len(paths) == 0 {
		err = fmt.Errorf("no convertible images in %s", strings.Join(args, " "))
	}
	if err != nil {
		a.state.Status = controller.Notify{Level: controller.LevelError, Text: err.Error()}
		a.log.Error("selection failed", "err", err)
		return nil
	}
	return a.dispatch(controller.FilesSelected{Paths: paths})
}

// dispatch runs ev through the controller and turns its effects into commands.
func (a *App) dispatch(ev controller.Event) tea.Cmd {
	var fx []controller.Effect
	a.state, fx = controller.Reduce(a.state, ev)

	var cmds []tea.Cmd
	for _, e := range fx {
		switch e := e.(type) {
		case controller.RenderPreview:
			cmds = append(cmds, a.renderPreview(e))
		case controller.ScheduleSettle:
			seq := e.Seq
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg { return settleMsg{seq: seq} }))
		case controller.StartBatch:
			cmds = append(cmds, a.startBatch(e))
		case controller.Notify:
			a.logNotice(e)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) renderPreview(req controller.RenderPreview) tea.Cmd {
	a.pending = req
	renderer := a.renderer
	return func() tea.Msg {
		img, err := renderer.Render(req.Path, req.Frame, req.Width, req.Height)
		if err != nil {
			return previewMsg{req: req, err: err}
		}
		return previewMsg{req: req, text: HalfBlock(img)}
	}
}

func (a *App) startBatch(req controller.StartBatch) tea.Cmd {
	updates := make(chan processor.ProgressUpdate, 64)
	a.updates = updates
	a.log.Info("batch starting", "files", len(req.Paths), "output", req.OutputDir, "rename", req.Options.RenameMode, "frame", req.Options.Frame.Border())
	for _, c := range processor.Collisions(processor.NewJobs(req.Paths, req.OutputDir, req.Options)) {
		a.log.Warn("output name shared by several inputs; last one wins", "name", c.OutputName, "inputs", len(c.Inputs))
	}

	ctx := a.ctx
	run := func() tea.Msg {
		result, err := processor.Run(ctx, req.Paths, req.OutputDir, req.Options, updates)
		close(updates)
		return batchDoneMsg{run: result, err: err}
	}
	return tea.Batch(run, a.listen())
}

func (a *App) listen() tea.Cmd {
	updates := a.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(u)
	}
}

func (a *App) logNotice(n controller.Notify) {
	switch n.Level {
	case controller.LevelError:
		a.log.Error(n.Text)
	case controller.LevelWarn:
		a.log.Warn(n.Text)
	default:
		a.log.Info(n.Text)
	}
}

// previewBox converts the terminal size into a pixel box for the preview pane.
func (a *App) previewBox() (int, int) {
	cols := a.width - sidebarWidth - 3
	rows := a.height - 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows * 2
}

func (a *App) View() string {
	side := a.sidebar()
	pane := previewPaneStyle.Render(a.preview)
	return lipgloss.JoinHorizontal(lipgloss.Top, side, pane)
}

func (a *App) sidebar() string {
	s := a.state
	sel := s.Selection

	var lines []string
	lines = append(lines, titleStyle.Render("webpconv"), "")

	if n := len(sel.Paths); n > 0 {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("File %d/%d", sel.Current+1, n)))
		lines = append(lines, inkStyle.Render(truncate(filepath.Base(sel.CurrentPath()), sidebarWidth-2)))
	} else {
		lines = append(lines, dimStyle.Render("No files selected"))
	}
	lines = append(lines, dimStyle.Render("Output: ")+inkStyle.Render(truncate(sel.OutputDir, sidebarWidth-10)), "")

	rename := "original name"
	if s.Options.RenameMode == processor.PrefixIndex {
		rename = fmt.Sprintf("%s_<n>", s.Options.Prefix)
	}
	lines = append(lines, dimStyle.Render("[r] Rename: ")+inkStyle.Render(rename))
	if s.Options.RenameMode == processor.PrefixIndex {
		lines = append(lines, dimStyle.Render("[x] Prefix: ")+inkStyle.Render(s.Options.Prefix))
	}

	frame := "off"
	if s.Options.Frame.Enabled {
		frame = "on"
	}
	lines = append(lines, dimStyle.Render("[f] Frame: ")+inkStyle.Render(frame))
	if s.Options.Frame.Enabled {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(s.Options.Frame.Color)).Render("  ")
		lines = append(lines,
			dimStyle.Render("[c] Color: ")+swatch+" "+inkStyle.Render(s.Options.Frame.Color),
			dimStyle.Render("[t] Thickness: ")+inkStyle.Render(s.ThicknessInput+" px"),
		)
	}
	lines = append(lines, "")

	if a.editing != editNone {
		lines = append(lines, accentStyle.Render(a.editing.label()+":"), inkStyle.Render(a.input+"█"), dimStyle.Render("enter to apply, esc to cancel"), "")
	}

	if s.Converting || s.Total > 0 {
		lines = append(lines, barStyle.Render(renderBar(sidebarWidth-8, s.Percent()/100))+labelStyle.Render(fmt.Sprintf(" %3.0f%%", s.Percent())))
		lines = append(lines, "")
	}

	if s.Status.Text != "" {
		lines = append(lines, statusStyle(s.Status.Level).Render(s.Status.Text), "")
	}

	lines = append(lines, dimStyle.Render("a add  n/p browse  o output  enter convert  q quit"))
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func statusStyle(level controller.Level) lipgloss.Style {
	switch level {
	case controller.LevelError:
		return lipgloss.NewStyle().Foreground(ColorError).Width(sidebarWidth - 2)
	case controller.LevelWarn:
		return lipgloss.NewStyle().Foreground(ColorWarn).Width(sidebarWidth - 2)
	default:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Width(sidebarWidth - 2)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return "…" + string(r[len(r)-max+1:])
}

var (
	sidebarStyle     = lipgloss.NewStyle().Width(sidebarWidth).PaddingRight(1)
	previewPaneStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(ColorDim)
	accentStyle      = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)
