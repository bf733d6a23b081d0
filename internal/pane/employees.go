package pane

import (
	"fmt"
	"image"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/tnguyen21/securedesk/internal/console"
	"github.com/tnguyen21/securedesk/internal/employee"
	"github.com/tnguyen21/securedesk/internal/layout"
	"github.com/tnguyen21/securedesk/internal/placeholder"
	"github.com/tnguyen21/securedesk/internal/theme"
)

// EmployeesLoadedMsg delivers the staff list read from the store.
type EmployeesLoadedMsg struct {
	Records []*employee.Record
	Err     error
}

// photoShare is the part of the detail column given to the photo.
const photoShare = 0.7

type employeesKeys struct {
	Filter key.Binding
	Copy   key.Binding
	Clear  key.Binding
	Select key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// EmployeesPane is the staff master-detail view: the photo and details of
// the selected employee on the left, the staff table on the right.
type EmployeesPane struct {
	width  int
	height int

	all      []*employee.Record // everything loaded from the store
	records  []*employee.Record // rows currently listed
	selected int                // index into records, -1 for none

	detailImage image.Image
	detailText  string

	photo      string
	photoImage image.Image
	photoCols  int
	photoRows  int

	splitter  *layout.Splitter
	table     table.Model
	filter    textinput.Model
	filtering bool
	loadErr   error

	copy func(string) error
	keys employeesKeys
}

// NewEmployeesPane creates an empty pane whose split is driven by s.
func NewEmployeesPane(s *layout.Splitter) *EmployeesPane {
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "name or department"
	fi.CharLimit = 64

	t := table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
	)

	p := &EmployeesPane{
		selected: -1,
		splitter: s,
		table:    t,
		filter:   fi,
		copy:     clipboard.WriteAll,
		keys: employeesKeys{
			Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
			Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
			Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
			Select: key.NewBinding(key.WithKeys("enter")),
			Accept: key.NewBinding(key.WithKeys("enter")),
			Cancel: key.NewBinding(key.WithKeys("esc")),
		},
	}
	p.applyTableStyles()
	return p
}

func (p *EmployeesPane) ID() PaneID     { return PaneEmployees }
func (p *EmployeesPane) Title() string { return "Employees" }

// Capturing reports whether the filter field has the keyboard.
func (p *EmployeesPane) Capturing() bool { return p.filtering }

// SetClipboard replaces the clipboard writer.
func (p *EmployeesPane) SetClipboard(write func(string) error) { p.copy = write }

// Splitter exposes the split view-model.
func (p *EmployeesPane) Splitter() *layout.Splitter { return p.splitter }

// Records returns the rows currently listed.
func (p *EmployeesPane) Records() []*employee.Record { return p.records }

// Selected returns the selected row index, or -1.
func (p *EmployeesPane) Selected() int { return p.selected }

// DetailImage returns the image shown in the detail view, nil when nothing
// is selected.
func (p *EmployeesPane) DetailImage() image.Image { return p.detailImage }

// DetailText returns the text shown in the detail view.
func (p *EmployeesPane) DetailText() string { return p.detailText }

// SetRecords replaces the full staff list and lists all of it.
func (p *EmployeesPane) SetRecords(records []*employee.Record) {
	p.all = records
	p.loadErr = nil
	p.Load(records)
}

// Load replaces the listed rows. The first row becomes selected when the
// list is non-empty; otherwise the selection is cleared.
func (p *EmployeesPane) Load(records []*employee.Record) {
	p.records = records
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{r.Department, r.FullName, r.HireDateString()}
	}
	p.table.SetRows(rows)
	if len(records) > 0 {
		p.Select(0)
		return
	}
	p.ClearSelection()
}

// Select makes row i the selected row. Out-of-range indexes are ignored.
func (p *EmployeesPane) Select(i int) {
	if i < 0 || i >= len(p.records) {
		return
	}
	p.selected = i
	p.table.SetCursor(i)
	p.onSelectionChanged()
}

// ClearSelection leaves no row selected.
func (p *EmployeesPane) ClearSelection() {
	p.selected = -1
	p.onSelectionChanged()
}

// onSelectionChanged is the only writer of the detail view.
func (p *EmployeesPane) onSelectionChanged() {
	p.applyTableStyles()
	if p.selected < 0 {
		p.detailImage = nil
		p.detailText = ""
		return
	}
	r := p.records[p.selected]
	p.detailImage = r.Photo()
	p.detailText = fmt.Sprintf("Department: %s\nFull name: %s\nHire date: %s",
		r.Department, r.FullName, r.HireDateString())
}

func (p *EmployeesPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.splitter.Resize(w)
	p.layoutTable()
	p.filter.Width = max(0, w-4)
}

func (p *EmployeesPane) Init() tea.Cmd {
	return nil
}

func (p *EmployeesPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EmployeesLoadedMsg:
		if msg.Err != nil {
			p.loadErr = msg.Err
			p.all = nil
			p.Load(nil)
			return p, nil
		}
		p.SetRecords(msg.Records)
		return p, nil

	case tea.KeyMsg:
		if p.filtering {
			return p, p.handleFilterKey(msg)
		}
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *EmployeesPane) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Filter):
		p.filtering = true
		p.filter.Focus()
		p.layoutTable()
		return textinput.Blink
	case key.Matches(msg, p.keys.Copy):
		return p.copyDetail()
	case key.Matches(msg, p.keys.Clear):
		p.ClearSelection()
		return nil
	case key.Matches(msg, p.keys.Select):
		p.Select(p.table.Cursor())
		return nil
	}

	km := p.table.KeyMap
	if !key.Matches(msg, km.LineUp, km.LineDown, km.PageUp, km.PageDown,
		km.HalfPageUp, km.HalfPageDown, km.GotoTop, km.GotoBottom) {
		return nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	if c := p.table.Cursor(); c != p.selected {
		p.Select(c)
	}
	return cmd
}

func (p *EmployeesPane) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.filter.Reset()
		p.filtering = false
		p.filter.Blur()
		p.Load(p.all)
		p.layoutTable()
		return nil
	case key.Matches(msg, p.keys.Accept):
		p.filtering = false
		p.filter.Blur()
		p.layoutTable()
		return nil
	}
	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.Load(Filter(p.all, p.filter.Value()))
	}
	return cmd
}

// Filter returns the records whose full name or department fuzzily match
// query, best match first. An empty query returns records unchanged.
func Filter(records []*employee.Record, query string) []*employee.Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	source := make([]string, len(records))
	for i, r := range records {
		source[i] = r.FullName + " " + r.Department
	}
	matches := fuzzy.Find(query, source)
	out := make([]*employee.Record, len(matches))
	for i, m := range matches {
		out[i] = records[m.Index]
	}
	return out
}

func (p *EmployeesPane) copyDetail() tea.Cmd {
	if p.selected < 0 {
		return console.Append("Nothing selected to copy.")
	}
	name := p.records[p.selected].FullName
	if err := p.copy(p.detailText); err != nil {
		return console.Append(fmt.Sprintf("Clipboard unavailable: %v", err))
	}
	return console.Append(fmt.Sprintf("Copied details of '%s' to the clipboard.", name))
}

// filterVisible reports whether the filter line takes a row.
func (p *EmployeesPane) filterVisible() bool {
	return p.filtering || p.filter.Value() != ""
}

// bodyHeight is the height left under the header and filter lines.
func (p *EmployeesPane) bodyHeight() int {
	h := p.height - 1
	if p.filterVisible() {
		h--
	}
	return max(0, h)
}

func (p *EmployeesPane) layoutTable() {
	if !p.splitter.Ready() {
		return
	}
	w := p.splitter.State().RightWidth()
	p.table.SetColumns(columns(w))
	p.table.SetWidth(w)
	p.table.SetHeight(p.bodyHeight())
}

// columns splits the table width between department, name and hire date.
func columns(width int) []table.Column {
	const dateW = 10
	// Each cell carries one column of padding on either side.
	avail := max(0, width-6-dateW)
	deptW := avail * 2 / 5
	return []table.Column{
		{Title: "Department", Width: deptW},
		{Title: "Full name", Width: avail - deptW},
		{Title: "Hire date", Width: dateW},
	}
}

func (p *EmployeesPane) applyTableStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorMuted).
		BorderBottom(true).
		Bold(true)
	if p.selected < 0 {
		s.Selected = lipgloss.NewStyle()
	} else {
		s.Selected = s.Selected.Foreground(theme.ColorAccent).Bold(true)
	}
	p.table.SetStyles(s)
}

func (p *EmployeesPane) View() string {
	if p.width == 0 || p.height == 0 || !p.splitter.Ready() {
		return ""
	}

	var b strings.Builder
	title := "STAFF"
	if n := len(p.records); n != len(p.all) {
		title = fmt.Sprintf("STAFF %d/%d", n, len(p.all))
	}
	b.WriteString(theme.PaneHeaderStyle.Render(centerPad(title, p.width)))
	b.WriteByte('\n')
	if p.filterVisible() {
		b.WriteString(p.filter.View())
		b.WriteByte('\n')
	}

	state := p.splitter.State()
	bodyH := p.bodyHeight()
	left := lipgloss.NewStyle().
		Width(state.LeftWidth()).
		Height(bodyH).
		MaxHeight(bodyH).
		Render(p.renderDetail(state.LeftWidth(), bodyH))

	right := ""
	if state.RightWidth() > 0 {
		right = p.renderTable(state.RightWidth(), bodyH)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	return b.String()
}

func (p *EmployeesPane) renderTable(w, h int) string {
	if p.loadErr != nil {
		return lipgloss.NewStyle().Width(w).Render(
			theme.IconError + " " + theme.FailStyle.Render("Could not load staff: "+p.loadErr.Error()))
	}
	if len(p.records) == 0 {
		msg := "No employees."
		if p.filter.Value() != "" {
			msg = "No matches."
		}
		return lipgloss.NewStyle().Width(w).Height(h).Render(theme.MutedStyle.Render(msg))
	}
	return p.table.View()
}

func (p *EmployeesPane) renderDetail(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if p.selected < 0 {
		return theme.MutedStyle.Render(TruncateWithEllipsis("No employee selected.", w))
	}

	photoRows := int(float64(h) * photoShare)
	var lines []string
	if photoRows > 0 && p.detailImage != nil {
		lines = append(lines, p.renderPhoto(w, photoRows))
	}
	for _, l := range strings.Split(p.detailText, "\n") {
		lines = append(lines, TruncateWithEllipsis(l, w))
	}
	return strings.Join(lines, "\n")
}

// renderPhoto caches the half-block rendering of the current photo.
func (p *EmployeesPane) renderPhoto(cols, rows int) string {
	if p.photoImage != p.detailImage || p.photoCols != cols || p.photoRows != rows {
		p.photo = placeholder.Render(p.detailImage, cols, rows)
		p.photoImage = p.detailImage
		p.photoCols = cols
		p.photoRows = rows
	}
	return p.photo
}

var _ Pane = (*EmployeesPane)(nil)
var _ InputCapturer = (*EmployeesPane)(nil)
