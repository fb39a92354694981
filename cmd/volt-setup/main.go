package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultAPIURL = "http://localhost:8080"

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	typedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("189"))
	pickStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	plainStyle  = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

type stage int

const (
	stageMenu stage = iota
	stageForm
	stageWait
	stageDone
)

var menuItems = []string{"Register a new admin", "Log in as an existing admin"}

// field is one line of the progressive form. Confirmed fields stay on
// screen while the next one is being typed.
type field struct {
	label  string
	secret bool
	value  string
}

func formFor(register bool, apiURL string) []field {
	fields := []field{
		{label: "Server URL (blank keeps " + apiURL + ")"},
		{label: "Admin email"},
	}
	if register {
		fields = append(fields, field{label: "Admin username"})
	}
	return append(fields, field{label: "Password (8+ chars)", secret: true})
}

type model struct {
	stage    stage
	apiURL   string
	choice   int
	register bool
	fields   []field
	active   int
	adminID  string
	token    string
	notice   string
	quitting bool
}

type doneMsg struct {
	adminID string
	token   string
}

type failMsg struct{ err error }

func newModel() model {
	apiURL := os.Getenv("VOLT_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return model{stage: stageMenu, apiURL: strings.TrimRight(apiURL, "/")}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case doneMsg:
		m.adminID = msg.adminID
		m.token = msg.token
		m.stage = stageDone
		m.notice = okStyle.Render("Authenticated as " + m.fields[1].value)

	case failMsg:
		m.notice = failStyle.Render(msg.err.Error())
		m.stage = stageMenu
		m.choice = 0
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp:
		if m.stage == stageMenu && m.choice > 0 {
			m.choice--
		}

	case tea.KeyDown:
		if m.stage == stageMenu && m.choice < len(menuItems)-1 {
			m.choice++
		}

	case tea.KeyBackspace:
		if m.stage == stageForm {
			if v := m.fields[m.active].value; v != "" {
				m.fields[m.active].value = v[:len(v)-1]
			}
		}

	case tea.KeyEnter:
		return m.advance()

	case tea.KeyRunes, tea.KeySpace:
		switch m.stage {
		case stageMenu, stageDone:
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "k":
				if m.stage == stageMenu && m.choice > 0 {
					m.choice--
				}
			case "j":
				if m.stage == stageMenu && m.choice < len(menuItems)-1 {
					m.choice++
				}
			}
		case stageForm:
			m.fields[m.active].value += msg.String()
		}
	}

	return m, nil
}

// advance moves the state machine forward on enter.
func (m model) advance() (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageMenu:
		m.register = m.choice == 0
		m.notice = ""
		m.fields = formFor(m.register, m.apiURL)
		m.active = 0
		m.stage = stageForm

	case stageForm:
		val := m.fields[m.active].value
		if m.active == 0 {
			// blank keeps the default server
			if val != "" {
				m.apiURL = strings.TrimRight(val, "/")
			}
		} else if val == "" {
			return m, nil
		}
		if m.active+1 < len(m.fields) {
			m.active++
			return m, nil
		}
		m.stage = stageWait
		return m, m.submit()

	case stageDone:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

type apiEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authPayload struct {
	Token string `json:"token"`
	Admin struct {
		ID string `json:"id"`
	} `json:"admin"`
}

// submit posts the collected form to the admin register or login endpoint
// and reports back as a doneMsg or failMsg.
func (m model) submit() tea.Cmd {
	endpoint := m.apiURL + "/api/v1/admin/login"
	body := map[string]string{
		"email":    m.fields[1].value,
		"password": m.fields[len(m.fields)-1].value,
	}
	if m.register {
		endpoint = m.apiURL + "/api/v1/admin/register"
		body["username"] = m.fields[2].value
	}
	apiURL := m.apiURL

	return func() tea.Msg {
		buf, _ := json.Marshal(body)
		client := &http.Client{Timeout: 10 * time.Second}

		resp, err := client.Post(endpoint, "application/json", bytes.NewReader(buf))
		if err != nil {
			return failMsg{fmt.Errorf("cannot reach %s: %w", apiURL, err)}
		}
		defer resp.Body.Close()

		var env apiEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return failMsg{fmt.Errorf("unreadable reply, HTTP %d", resp.StatusCode)}
		}
		if env.Status != "success" {
			if env.Message == "" {
				env.Message = fmt.Sprintf("server replied HTTP %d", resp.StatusCode)
			}
			return failMsg{errors.New(env.Message)}
		}

		var data authPayload
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
			return failMsg{errors.New("reply carried no token")}
		}
		return doneMsg{adminID: data.Admin.ID, token: data.Token}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render("Volt admin setup") + "\n\n")

	switch m.stage {
	case stageMenu:
		if m.notice != "" {
			b.WriteString(m.notice + "\n\n")
		}
		b.WriteString(labelStyle.Render("Pick an action") + "\n\n")
		for i, item := range menuItems {
			if i == m.choice {
				b.WriteString("> " + pickStyle.Render(item) + "\n")
			} else {
				b.WriteString("  " + plainStyle.Render(item) + "\n")
			}
		}
		b.WriteString("\n" + hintStyle.Render("up/down move, enter selects, q quits") + "\n")

	case stageForm:
		for i := 0; i <= m.active && i < len(m.fields); i++ {
			f := m.fields[i]
			shown := f.value
			if f.secret {
				shown = strings.Repeat("*", len(f.value))
			}
			b.WriteString(labelStyle.Render(f.label+":") + " " + typedStyle.Render(shown))
			if i == m.active {
				b.WriteString(typedStyle.Render("_"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + hintStyle.Render("enter confirms each field, esc quits") + "\n")

	case stageWait:
		if m.register {
			b.WriteString("Creating the admin account...\n")
		} else {
			b.WriteString("Signing in...\n")
		}

	case stageDone:
		b.WriteString(m.notice + "\n\n")
		if m.adminID != "" {
			b.WriteString("Admin ID: " + m.adminID + "\n")
		}
		b.WriteString("Bearer token:\n")
		b.WriteString(typedStyle.Render(m.token) + "\n\n")
		b.WriteString(hintStyle.Render("enter closes, the token is printed again on exit") + "\n")
	}

	return b.String()
}

func main() {
	p := tea.NewProgram(newModel())
	out, err := p.Run()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	// reprint outside the TUI so the token survives in the scrollback
	if m, ok := out.(model); ok && m.token != "" {
		fmt.Println("Admin token:")
		fmt.Println(m.token)
	}
}
