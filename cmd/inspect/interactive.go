package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/ort"
	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/providers"
	"github.com/wippyai/ort/session"
	"github.com/wippyai/ort/tensor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateDetail
	stateMeta
	stateDims
	stateResult
)

type rowInfo struct {
	dir  string // "in" or "out"
	spec session.IOSpec
}

type metaInfo struct {
	graph       string
	producer    string
	domain      string
	description string
	version     int64
	custom      [][2]string
}

type inspectModel struct {
	filename string
	err      error

	env  *session.Environment
	sess *session.Session

	engineLine string
	provLine   string
	meta       metaInfo
	rows       []rowInfo

	selected int
	state    modelState

	dimNames []string
	inputs   []textinput.Model
	focusIdx int

	runErr     error
	runOuts    []outSummary
	runElapsed time.Duration
}

func newInspectModel(filename string) *inspectModel {
	return &inspectModel{
		filename: filename,
		state:    stateList,
	}
}

type loadedMsg struct {
	err        error
	env        *session.Environment
	sess       *session.Session
	engineLine string
	provLine   string
	meta       metaInfo
	rows       []rowInfo
}

type runMsg struct {
	err     error
	outs    []outSummary
	elapsed time.Duration
}

func (m *inspectModel) Init() tea.Cmd {
	return m.load
}

func (m *inspectModel) load() tea.Msg {
	if err := resolveEngine(); err != nil {
		return loadedMsg{err: err}
	}

	cfg, err := ort.ConfigFromEnv()
	if err != nil {
		return loadedMsg{err: err}
	}
	level, err := session.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = session.LogDefault
	}

	engineLine := "installed table"
	if v := engine.Version(); v != "" {
		engineLine = v + " (" + engine.Path() + ")"
	}
	avail, err := providers.Available()
	if err != nil {
		return loadedMsg{err: err}
	}

	env, err := session.NewEnvironment(&session.EnvConfig{
		Name:      "inspect",
		Level:     level,
		Telemetry: cfg.Telemetry,
	})
	if err != nil {
		return loadedMsg{err: err}
	}
	sess, err := session.Open(env, m.filename, nil)
	if err != nil {
		env.Close()
		return loadedMsg{err: err}
	}

	meta, err := fetchMeta(sess)
	if err != nil {
		sess.Close()
		env.Close()
		return loadedMsg{err: err}
	}

	var rows []rowInfo
	for _, spec := range sess.Inputs() {
		rows = append(rows, rowInfo{dir: "in", spec: spec})
	}
	for _, spec := range sess.Outputs() {
		rows = append(rows, rowInfo{dir: "out", spec: spec})
	}

	return loadedMsg{
		env:        env,
		sess:       sess,
		engineLine: engineLine,
		provLine:   strings.Join(avail, ", "),
		meta:       meta,
		rows:       rows,
	}
}

func fetchMeta(s *session.Session) (metaInfo, error) {
	md, err := s.Metadata()
	if err != nil {
		return metaInfo{}, err
	}
	defer md.Close()

	var info metaInfo
	if info.graph, err = md.GraphName(); err != nil {
		return metaInfo{}, err
	}
	if info.producer, err = md.Producer(); err != nil {
		return metaInfo{}, err
	}
	if info.domain, err = md.Domain(); err != nil {
		return metaInfo{}, err
	}
	if info.description, err = md.Description(); err != nil {
		return metaInfo{}, err
	}
	if info.version, err = md.Version(); err != nil {
		return metaInfo{}, err
	}
	keys, err := md.CustomKeys()
	if err != nil {
		return metaInfo{}, err
	}
	for _, k := range keys {
		v, _, err := md.Custom(k)
		if err != nil {
			return metaInfo{}, err
		}
		info.custom = append(info.custom, [2]string{k, v})
	}
	return info, nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.sess != nil {
				m.sess.Close()
			}
			if m.env != nil {
				m.env.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateList:
				if len(m.rows) > 0 {
					m.state = stateDetail
				}
			case stateDims:
				return m, m.runModel
			case stateDetail, stateMeta:
				m.state = stateList
			case stateResult:
				m.state = stateList
				m.runErr = nil
				m.runOuts = nil
			}

		case "m":
			if m.state == stateList {
				m.state = stateMeta
			}

		case "r":
			if m.state == stateList && m.sess != nil {
				m.prepareDims()
				if len(m.inputs) == 0 {
					return m, m.runModel
				}
				m.state = stateDims
			}

		case "tab":
			if m.state == stateDims && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateDetail, stateMeta:
				m.state = stateList
			case stateDims:
				m.state = stateList
				m.inputs = nil
			case stateResult:
				m.state = stateList
				m.runErr = nil
				m.runOuts = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.env = msg.env
		m.sess = msg.sess
		m.engineLine = msg.engineLine
		m.provLine = msg.provLine
		m.meta = msg.meta
		m.rows = msg.rows

	case runMsg:
		m.runErr = msg.err
		m.runOuts = msg.outs
		m.runElapsed = msg.elapsed
		m.state = stateResult
		m.inputs = nil
	}

	if m.state == stateDims {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// prepareDims builds one entry field per distinct symbolic dimension across
// the model's inputs. Models with static shapes need none.
func (m *inspectModel) prepareDims() {
	seen := make(map[string]bool)
	m.dimNames = nil
	for _, row := range m.rows {
		if row.dir != "in" || row.spec.Type.Kind != api.TypeTensor {
			continue
		}
		for i, d := range row.spec.Type.Dims {
			if d >= 0 || i >= len(row.spec.Type.Symbolic) {
				continue
			}
			name := row.spec.Type.Symbolic[i]
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			m.dimNames = append(m.dimNames, name)
		}
	}

	m.inputs = make([]textinput.Model, len(m.dimNames))
	for i, name := range m.dimNames {
		ti := textinput.New()
		ti.Placeholder = "1"
		ti.Prompt = name + ": "
		ti.Width = 12
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *inspectModel) runModel() tea.Msg {
	overrides := make(map[string]int64, len(m.inputs))
	for i, ti := range m.inputs {
		v, err := strconv.ParseInt(strings.TrimSpace(ti.Value()), 10, 64)
		if err != nil || v < 1 {
			v = 1
		}
		overrides[m.dimNames[i]] = v
	}

	outs, elapsed, err := smokeRun(m.sess, overrides)
	if err != nil {
		return runMsg{err: err}
	}
	return runMsg{outs: outs, elapsed: elapsed}
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.sess == nil {
		return "Loading model..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Model Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		b.WriteString("Engine: " + m.engineLine + "\n")
		b.WriteString("Providers: " + m.provLine + "\n")
		if m.meta.graph != "" {
			b.WriteString("Graph: " + nameStyle.Render(m.meta.graph) + "\n")
		}
		b.WriteString("\n")
		for i, row := range m.rows {
			line := m.formatRow(row)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter detail • m metadata • r run • q quit"))

	case stateDetail:
		row := m.rows[m.selected]
		b.WriteString(m.formatRow(row))
		b.WriteString("\n\n")
		b.WriteString(detailView(row.spec))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))

	case stateMeta:
		b.WriteString(metaView(m.meta))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))

	case stateDims:
		b.WriteString("Pin dynamic dimensions:\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateResult:
		b.WriteString("Smoke run:\n\n")
		if m.runErr != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.runErr)))
		} else {
			for _, o := range m.runOuts {
				b.WriteString("  " + nameStyle.Render(o.Name) + "  " + typeStyle.Render(o.Type) + "\n")
			}
			b.WriteString("\n")
			b.WriteString(resultStyle.Render(fmt.Sprintf("completed in %s", m.runElapsed.Round(time.Microsecond))))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *inspectModel) formatRow(row rowInfo) string {
	dir := "input "
	if row.dir == "out" {
		dir = "output"
	}
	return dir + " " + nameStyle.Render(row.spec.Name) + "  " + typeStyle.Render(row.spec.Type.String())
}

func detailView(spec session.IOSpec) string {
	vt := spec.Type
	var b strings.Builder
	b.WriteString("Type: " + typeStyle.Render(vt.String()) + "\n")
	if vt.Kind != api.TypeTensor {
		return b.String()
	}

	static := true
	for i, d := range vt.Dims {
		label := strconv.FormatInt(d, 10)
		if d < 0 {
			static = false
			label = "dynamic"
			if i < len(vt.Symbolic) && vt.Symbolic[i] != "" {
				label = vt.Symbolic[i] + " (dynamic)"
			}
		}
		b.WriteString(fmt.Sprintf("  axis %d: %s\n", i, label))
	}
	if len(vt.Dims) == 0 {
		b.WriteString("  scalar\n")
	}
	if static {
		n := vt.Dims.Elements()
		b.WriteString(fmt.Sprintf("Elements: %d\n", n))
		if width := tensor.SizeOf(vt.Elem); width > 0 {
			b.WriteString(fmt.Sprintf("Bytes: %d\n", n*int64(width)))
		}
	}
	return b.String()
}

func metaView(meta metaInfo) string {
	var b strings.Builder
	b.WriteString("Graph: " + meta.graph + "\n")
	if meta.producer != "" {
		b.WriteString("Producer: " + meta.producer + "\n")
	}
	if meta.domain != "" {
		b.WriteString("Domain: " + meta.domain + "\n")
	}
	if meta.version != 0 {
		b.WriteString("Version: " + strconv.FormatInt(meta.version, 10) + "\n")
	}
	if meta.description != "" {
		b.WriteString("Description: " + meta.description + "\n")
	}
	if len(meta.custom) > 0 {
		b.WriteString("\nCustom metadata:\n")
		for _, kv := range meta.custom {
			b.WriteString("  " + kv[0] + " = " + kv[1] + "\n")
		}
	}
	return b.String()
}

func runInteractive(filename string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInspectModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
