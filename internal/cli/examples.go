package cli

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

//go:embed samples/*.erd
var sampleFS embed.FS

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// sample is one embedded example definition.
type sample struct {
	Name        string // file stem, e.g. "ecommerce"
	Description string // first comment line of the file
	Source      string
}

// loadSamples reads the embedded definitions, sorted by name.
func loadSamples() ([]sample, error) {
	entries, err := sampleFS.ReadDir("samples")
	if err != nil {
		return nil, fmt.Errorf("read embedded samples: %w", err)
	}

	samples := make([]sample, 0, len(entries))
	for _, e := range entries {
		data, err := sampleFS.ReadFile("samples/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", e.Name(), err)
		}
		samples = append(samples, sample{
			Name:        strings.TrimSuffix(e.Name(), ".erd"),
			Description: sampleDescription(string(data)),
			Source:      string(data),
		})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}

// sampleDescription extracts the leading comment line, if any.
func sampleDescription(source string) string {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
		break
	}
	return ""
}

// =============================================================================
// examples command
// =============================================================================

func (c *CLI) examplesCommand() *cobra.Command {
	var (
		list   bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "Browse bundled example definitions",
		Long: `Browse bundled example definitions.

Without arguments, opens an interactive picker; the chosen example is
written to ./<name>.erd as a starting point. With a name argument, that
example is written directly. Use --list to see the available names and
--stdout to print a definition instead of writing a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := loadSamples()
			if err != nil {
				return err
			}
			if list {
				printSampleList(samples)
				return nil
			}
			if len(args) == 1 {
				return c.writeSample(samples, args[0], stdout)
			}
			return c.pickSample(samples, stdout)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list available examples and exit")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the definition instead of writing a file")

	return cmd
}

func printSampleList(samples []sample) {
	fmt.Println(StyleTitle.Render("Examples"))
	for _, s := range samples {
		fmt.Printf("  %s  %s\n", StyleValue.Render(fmt.Sprintf("%-14s", s.Name)), StyleDim.Render(s.Description))
	}
}

func (c *CLI) writeSample(samples []sample, name string, stdout bool) error {
	for _, s := range samples {
		if s.Name != name {
			continue
		}
		if stdout {
			fmt.Print(s.Source)
			return nil
		}
		return c.emitSample(s)
	}

	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.Name
	}
	return fmt.Errorf("unknown example %q (available: %s)", name, strings.Join(names, ", "))
}

func (c *CLI) pickSample(samples []sample, stdout bool) error {
	m := NewSampleListModel(samples)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(SampleListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}
	if stdout {
		fmt.Print(fm.Selected.Source)
		return nil
	}
	return c.emitSample(*fm.Selected)
}

func (c *CLI) emitSample(s sample) error {
	path := s.Name + ".erd"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", path)
	}
	if err := os.WriteFile(path, []byte(s.Source), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Example written")
	printFile(path)
	printNewline()
	printNextStep("Generate the diagram", appName+" generate "+path)
	return nil
}

// =============================================================================
// SampleListModel - interactive example selection
// =============================================================================

// SampleListModel is the bubbletea model for the example picker.
type SampleListModel struct {
	Samples  []sample
	Cursor   int
	Selected *sample
	Height   int
	Offset   int
}

// NewSampleListModel creates a new sample list model.
func NewSampleListModel(samples []sample) SampleListModel {
	return SampleListModel{
		Samples: samples,
		Height:  15,
	}
}

func (m SampleListModel) Init() tea.Cmd {
	return nil
}

func (m SampleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Samples)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			s := m.Samples[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SampleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Example"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Samples) {
		end = len(m.Samples)
	}

	for i := m.Offset; i < end; i++ {
		s := m.Samples[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-14s  %s", cursor, s.Name, listDimStyle.Render(s.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Samples))))

	return b.String()
}
