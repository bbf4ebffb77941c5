package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dchassin/plot-glm/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// modelFile is one entry in the interactive file picker.
type modelFile struct {
	Name string // file name relative to the working directory
	Size int64  // file size in bytes
}

// findModelFiles lists the GLM and JSON model files in dir, sorted by name.
func findModelFiles(dir string) ([]modelFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []modelFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".glm" && ext != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, modelFile{Name: e.Name(), Size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// pickModelFile runs the interactive picker over the model files in dir and
// returns the chosen path. It fails when dir contains no model files or the
// user cancels.
func pickModelFile(dir string) (string, error) {
	files, err := findModelFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"no input file and no model files found in %s", dir)
	}

	m := newFileListModel(files)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(fileListModel)
	if !ok || result.Selected == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no input file selected")
	}
	return filepath.Join(dir, result.Selected), nil
}

// fileListModel is the bubbletea model for interactive model file selection.
type fileListModel struct {
	Files    []modelFile
	Cursor   int
	Selected string
}

func newFileListModel(files []modelFile) fileListModel {
	return fileListModel{Files: files}
}

func (m fileListModel) Init() tea.Cmd {
	return nil
}

func (m fileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Files[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m fileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Model File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Files {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := "json"
		if strings.HasSuffix(f.Name, ".glm") {
			kind = "glm"
		}

		line := fmt.Sprintf("%s%-30s  %s %s", cursor, f.Name,
			listDimStyle.Render(kind), listDimStyle.Render(formatSize(f.Size)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// formatSize renders a byte count in a compact human-readable form.
func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%dB", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1fkB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	}
}
