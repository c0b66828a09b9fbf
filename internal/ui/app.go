package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/pagination"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/session"
	"github.com/five82/folio/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewSignup
	ViewPosts
	ViewPost
	ViewAddComment
	ViewAlbums
	ViewPhotos
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Session      *session.Store
	Blog         *state.BlogStore
	Photos       *state.PhotoStore
	Theme        *prefs.Theme
	ItemsPerPage int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *session.Store
	blog      *state.BlogStore
	photos    *state.PhotoStore
	themePref *prefs.Theme
	perPage   int
	now       func() time.Time

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	// Data state
	blogSnap  state.BlogSnapshot
	photoSnap state.PhotoSnapshot

	// Posts state
	postPager  pagination.Pager
	postRow    int
	openPostID int64

	// Post detail state
	detailViewport viewport.Model

	// Albums and photos state
	albumPager  pagination.Pager
	albumRow    int
	openAlbumID int64
	photoPager  pagination.Pager

	// Form state
	form    form
	formErr string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	perPage := opts.ItemsPerPage
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}

	m := Model{
		ctx:            ctx,
		session:        opts.Session,
		blog:           opts.Blog,
		photos:         opts.Photos,
		themePref:      opts.Theme,
		perPage:        perPage,
		now:            time.Now,
		keys:           DefaultKeyMap(),
		theme:          ThemeFor(opts.Theme.IsDarkMode()),
		postPager:      pagination.NewPager(0, perPage),
		albumPager:     pagination.NewPager(0, perPage),
		photoPager:     pagination.NewPager(0, perPage),
		detailViewport: viewport.New(0, 0),
	}
	if m.session.IsAuthenticated() {
		m.currentView = ViewPosts
	} else {
		m.openAuth(ViewLogin, "")
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.isFormView() {
		return textinput.Blink
	}
	return m.ensurePosts()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateDetailViewport()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, nil
	}

	if m.isFormView() {
		return m, m.form.update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.isFormView() {
		return m.renderForm()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.isFormView() {
		return m.handleFormKey(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme = ThemeFor(m.themePref.Toggle())
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		m.session.Logout()
		m.openAuth(ViewLogin, "")
		m.refresh()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ViewPosts):
		m.currentView = ViewPosts
		return m, m.ensurePosts()

	case key.Matches(msg, m.keys.ViewAlbums):
		m.currentView = ViewAlbums
		return m, m.ensureAlbums()

	case key.Matches(msg, m.keys.Escape):
		m.back()
		return m, nil
	}

	switch m.currentView {
	case ViewPosts:
		return m.handlePostsKey(msg)
	case ViewPost:
		return m.handlePostKey(msg)
	case ViewAlbums:
		return m.handleAlbumsKey(msg)
	case ViewPhotos:
		return m.handlePhotosKey(msg)
	}

	return m, nil
}

// back moves one level up the view hierarchy.
func (m *Model) back() {
	switch m.currentView {
	case ViewPost, ViewAlbums:
		m.currentView = ViewPosts
	case ViewPhotos:
		m.currentView = ViewAlbums
	}
}

// handleFormKey routes keys while a form has focus. Printable keys always
// go to the focused input.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()

	case key.Matches(msg, m.keys.NextField):
		m.form.next()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.prev()
		return m, nil

	case key.Matches(msg, m.keys.SwitchForm):
		switch m.currentView {
		case ViewLogin:
			m.openAuth(ViewSignup, "")
		case ViewSignup:
			m.openAuth(ViewLogin, "")
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		switch m.currentView {
		case ViewAddComment:
			m.currentView = ViewPost
			m.formErr = ""
		case ViewSignup:
			m.openAuth(ViewLogin, "")
		}
		return m, nil
	}

	m.formErr = ""
	return m, m.form.update(msg)
}

// submitForm validates and submits the active form.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.kind {
	case formLogin:
		creds := m.form.credentials()
		if err := session.ValidateCredentials(creds); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		res := m.session.Login(creds)
		if !res.Success {
			m.notice = ""
			m.formErr = res.Message
			return m, nil
		}
		m.formErr = ""
		m.notice = res.Message
		m.currentView = ViewPosts
		m.postPager = pagination.NewPager(0, m.perPage)
		m.postRow = 0
		m.refresh()
		return m, m.loadPostsCmd()

	case formSignup:
		user, confirm := m.form.signupUser()
		if err := session.ValidateSignup(user, confirm); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		res := m.session.Signup(user)
		if !res.Success {
			m.formErr = res.Message
			return m, nil
		}
		m.openAuth(ViewLogin, res.Message)
		m.form.set(loginUsername, user.Username)
		m.form.setFocus(loginPassword)
		return m, nil

	case formComment:
		post := m.blogSnap.SelectedPost
		if post == nil {
			m.currentView = ViewPosts
			return m, nil
		}
		name := m.form.value(commentName)
		email := m.form.value(commentEmail)
		body := m.form.value(commentBody)
		if err := state.ValidateComment(name, email, body); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.blog.AddUserComment(post.ID, state.NewUserComment(post.ID, name, email, body, m.now()))
		m.formErr = ""
		m.notice = "Comment added"
		m.currentView = ViewPost
		m.refresh()
		m.detailViewport.GotoTop()
		return m, nil
	}
	return m, nil
}

// openAuth shows the login or signup form with an optional notice.
func (m *Model) openAuth(v View, notice string) {
	m.currentView = v
	m.notice = notice
	m.formErr = ""
	if v == ViewSignup {
		m.form = newForm(formSignup)
	} else {
		m.form = newForm(formLogin)
	}
}

func (m Model) isFormView() bool {
	switch m.currentView {
	case ViewLogin, ViewSignup, ViewAddComment:
		return true
	}
	return false
}

// refresh copies fresh snapshots out of the stores and brings paging and
// the current view back in line with them.
func (m *Model) refresh() {
	m.blogSnap = m.blog.Snapshot()
	m.photoSnap = m.photos.Snapshot()
	m.theme = ThemeFor(m.themePref.IsDarkMode())

	m.postPager.SetTotal(len(m.blogSnap.Posts))
	m.postRow = clampRow(m.postRow, len(pagination.Page(m.postPager, m.blogSnap.Posts)))
	m.albumPager.SetTotal(len(m.photoSnap.Albums))
	m.albumRow = clampRow(m.albumRow, len(pagination.Page(m.albumPager, m.photoSnap.Albums)))
	m.photoPager.SetTotal(len(m.photoSnap.Photos))

	if !m.session.IsAuthenticated() && m.currentView != ViewLogin && m.currentView != ViewSignup {
		m.openAuth(ViewLogin, "")
	}

	m.updateDetailViewport()
}

func clampRow(row, n int) int {
	if row >= n {
		row = n - 1
	}
	if row < 0 {
		row = 0
	}
	return row
}

// renderMain renders the header, command bar and active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPosts:
		return m.renderPosts()
	case ViewPost:
		return m.detailViewport.View()
	case ViewAlbums:
		return m.renderAlbums()
	case ViewPhotos:
		return m.renderPhotos()
	default:
		return ""
	}
}

// Messages

// storeChangedMsg tells the model to re-read the stores.
type storeChangedMsg struct{}

// Commands

func (m Model) loadPostsCmd() tea.Cmd {
	blog, ctx := m.blog, m.ctx
	return func() tea.Msg {
		blog.LoadPosts(ctx)
		return storeChangedMsg{}
	}
}

func (m Model) ensurePosts() tea.Cmd {
	if len(m.blogSnap.Posts) > 0 || m.blogSnap.IsLoading {
		return nil
	}
	return m.loadPostsCmd()
}

func (m Model) openPostCmd(id int64) tea.Cmd {
	blog, ctx := m.blog, m.ctx
	return func() tea.Msg {
		blog.LoadPostByID(ctx, id)
		blog.LoadComments(ctx, id)
		return storeChangedMsg{}
	}
}

func (m Model) loadAlbumsCmd() tea.Cmd {
	photos, ctx := m.photos, m.ctx
	return func() tea.Msg {
		photos.LoadAlbums(ctx)
		return storeChangedMsg{}
	}
}

func (m Model) ensureAlbums() tea.Cmd {
	if len(m.photoSnap.Albums) > 0 || m.photoSnap.IsLoading {
		return nil
	}
	return m.loadAlbumsCmd()
}

func (m Model) openAlbumCmd(id int64) tea.Cmd {
	photos, ctx := m.photos, m.ctx
	return func() tea.Msg {
		photos.LoadAlbumByID(ctx, id)
		photos.LoadPhotosByAlbumID(ctx, id)
		return storeChangedMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Observers may fire from inside Update, so never block on Send there
	notify := func() { go p.Send(storeChangedMsg{}) }
	cancels := []func(){
		opts.Session.Subscribe(notify),
		opts.Blog.Subscribe(notify),
		opts.Photos.Subscribe(notify),
		opts.Theme.Subscribe(notify),
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
