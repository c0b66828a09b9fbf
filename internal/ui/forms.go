package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/placeholder"
)

type formKind int

const (
	formLogin formKind = iota
	formSignup
	formComment
)

// Field positions per form.
const (
	loginUsername = iota
	loginPassword
)

const (
	signupFirstName = iota
	signupLastName
	signupUsername
	signupPassword
	signupConfirm
)

const (
	commentName = iota
	commentEmail
	commentBody
)

type formField struct {
	label string
	input textinput.Model
}

// form is a column of text inputs with a single focused field.
type form struct {
	kind   formKind
	fields []formField
	focus  int
}

func newForm(kind formKind) form {
	var fields []formField
	switch kind {
	case formLogin:
		fields = []formField{
			{"Username", newInput("Enter your username", 40, false)},
			{"Password", newInput("Enter your password", 64, true)},
		}
	case formSignup:
		fields = []formField{
			{"First name", newInput("Jane", 40, false)},
			{"Last name", newInput("Doe", 40, false)},
			{"Username", newInput("At least 3 characters", 40, false)},
			{"Password", newInput("At least 6 characters", 64, true)},
			{"Confirm password", newInput("Repeat the password", 64, true)},
		}
	case formComment:
		fields = []formField{
			{"Name", newInput("Your name", 80, false)},
			{"Email", newInput("you@example.com", 120, false)},
			{"Comment", newInput("At least 10 characters", 500, false)},
		}
	}
	f := form{kind: kind, fields: fields}
	f.setFocus(0)
	return f
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 36
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() {
	if len(f.fields) == 0 {
		return
	}
	f.setFocus((f.focus + 1) % len(f.fields))
}

func (f *form) prev() {
	if len(f.fields) == 0 {
		return
	}
	f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].input.Value()
}

func (f *form) set(i int, v string) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	f.fields[i].input.SetValue(v)
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f form) credentials() placeholder.Credentials {
	return placeholder.Credentials{
		Username: f.value(loginUsername),
		Password: f.value(loginPassword),
	}
}

func (f form) signupUser() (user placeholder.User, confirm string) {
	return placeholder.User{
		FirstName: f.value(signupFirstName),
		LastName:  f.value(signupLastName),
		Username:  f.value(signupUsername),
		Password:  f.value(signupPassword),
	}, f.value(signupConfirm)
}

// commentForm prefills name and email from the logged-in user.
func commentForm(user placeholder.User, ok bool) form {
	f := newForm(formComment)
	if ok {
		f.set(commentName, user.FullName())
		if user.Username != "" {
			f.set(commentEmail, user.Username+"@example.com")
		}
		f.setFocus(commentBody)
	}
	return f
}

// renderForm renders the active form as a centered modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	var title, hint string
	switch m.form.kind {
	case formLogin:
		title = "Log in"
		hint = "Enter: Log in  •  Tab: Next field  •  Ctrl+N: Sign up"
	case formSignup:
		title = "Sign up"
		hint = "Enter: Create account  •  Tab: Next field  •  Ctrl+N/Esc: Log in"
	case formComment:
		title = "Add comment"
		if post := m.blogSnap.SelectedPost; post != nil {
			title += " · " + truncate(post.Title, 30)
		}
		hint = "Enter: Post comment  •  Tab: Next field  •  Esc: Cancel"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 46)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(styles.SuccessText.Render(m.notice))
		b.WriteString("\n\n")
	}

	labelWidth := 0
	for _, f := range m.form.fields {
		labelWidth = max(labelWidth, len(f.label)+2)
	}
	for i, f := range m.form.fields {
		label := padRight(f.label+":", labelWidth)
		if i == m.form.focus {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(f.input.View())
		b.WriteString("\n\n")
	}

	if m.formErr != "" {
		for _, line := range strings.Split(m.formErr, "\n") {
			b.WriteString(styles.DangerText.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render(hint))

	return m.renderModal(b.String(), 60)
}
