package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DixDev1621/portfolio/internal/content"
	"github.com/DixDev1621/portfolio/internal/session"
	"github.com/DixDev1621/portfolio/internal/ui"
)

type navView struct {
	PageID   string
	Profile  content.Profile
	Sections []ui.Section
	MenuOpen bool
}

type extraView struct {
	PageID    string
	Projects  []string
	ShowExtra bool
	Label     string
}

type formView struct {
	PageID  string
	Input   ui.ContactInput
	Missing map[string]bool
	Error   string
}

type pageView struct {
	*content.Portfolio
	PageID    string
	About     template.HTML
	Recipient string
	Nav       navView
	Extra     extraView
	Form      formView
}

func (s *Server) navView(page string, st ui.NavigationState) navView {
	return navView{
		PageID:   page,
		Profile:  s.content.Profile,
		Sections: s.content.Catalog().Sections(),
		MenuOpen: st.MenuOpen,
	}
}

func (s *Server) extraView(page string, st ui.DisclosureState) extraView {
	d := ui.NewDisclosure(st)
	return extraView{
		PageID:    page,
		Projects:  s.content.ExtraProjects,
		ShowExtra: st.ShowExtra,
		Label:     d.Label(),
	}
}

func (s *Server) pageView(page string, st session.State, form formView) pageView {
	form.PageID = page
	return pageView{
		Portfolio: s.content,
		PageID:    page,
		About:     s.content.AboutHTML(),
		Recipient: s.recipient,
		Nav:       s.navView(page, st.Navigation),
		Extra:     s.extraView(page, st.Disclosure),
		Form:      form,
	}
}

func (s *Server) serverError(c *gin.Context, err error) {
	log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"error": "Something went wrong. Please reload the page.",
	})
}

// stateKey returns the page view a request belongs to. HTMX requests carry
// the page id in a header set on <body>; plain form posts carry it in a
// hidden field.
func stateKey(c *gin.Context) (session.Key, bool) {
	page := c.GetHeader(pageHeader)
	if page == "" {
		page = c.PostForm("page")
	}
	if !session.ValidID(page) {
		return session.Key{}, false
	}
	return session.Key{Session: sessionID(c), Page: page}, true
}

// update applies fn to the request's page state. It writes the response
// itself and returns false when the request cannot go on.
func (s *Server) update(c *gin.Context, fn func(*session.State) bool) (session.Key, session.State, bool) {
	key, ok := stateKey(c)
	if !ok {
		c.HTML(http.StatusBadRequest, "error", gin.H{
			"error": "This page has expired. Please reload it.",
		})
		return key, session.State{}, false
	}
	st, err := s.store.Update(c.Request.Context(), key, fn)
	if err != nil {
		s.serverError(c, err)
		return key, session.State{}, false
	}
	return key, st, true
}

// respond renders fragment for HTMX requests and the whole page otherwise.
func (s *Server) respond(c *gin.Context, status int, fragment string, data any, key session.Key, st session.State) {
	if isHTMX(c) {
		c.HTML(status, fragment, data)
		return
	}
	c.HTML(status, "page", s.pageView(key.Page, st, formView{}))
}

// A page load starts a fresh page view: menu closed, extra projects hidden.
// Other tabs on the same cookie keep their own state.
func (s *Server) handleIndex(c *gin.Context) {
	key := session.Key{Session: sessionID(c), Page: session.NewID()}
	if err := s.store.Reset(c.Request.Context(), key); err != nil {
		s.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "page", s.pageView(key.Page, session.State{}, formView{}))
}

func (s *Server) handleToggleMenu(c *gin.Context) {
	key, st, ok := s.update(c, func(st *session.State) bool {
		nav := ui.NewNavigation(st.Navigation, nil)
		nav.ToggleMenu()
		st.Navigation = nav.State()
		return true
	})
	if !ok {
		return
	}
	s.respond(c, http.StatusOK, "nav", s.navView(key.Page, st.Navigation), key, st)
}

func (s *Server) handleNavigate(c *gin.Context) {
	events := newHXEvents(s.content.Catalog())
	key, st, ok := s.update(c, func(st *session.State) bool {
		nav := ui.NewNavigation(st.Navigation, events)
		if !nav.NavigateTo(c.Param("id")) {
			return false
		}
		st.Navigation = nav.State()
		return true
	})
	if !ok {
		return
	}
	events.write(c)
	s.respond(c, http.StatusOK, "nav", s.navView(key.Page, st.Navigation), key, st)
}

func (s *Server) handleToggleExtra(c *gin.Context) {
	key, st, ok := s.update(c, func(st *session.State) bool {
		d := ui.NewDisclosure(st.Disclosure)
		d.Toggle()
		st.Disclosure = d.State()
		return true
	})
	if !ok {
		return
	}
	s.respond(c, http.StatusOK, "extra", s.extraView(key.Page, st.Disclosure), key, st)
}

// handleContact turns the form into a mailto draft. Nothing is sent from
// here; the browser hands the directive to the visitor's mail client.
func (s *Server) handleContact(c *gin.Context) {
	var in ui.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		s.renderForm(c, http.StatusBadRequest, formView{Error: "Could not read the form."})
		return
	}

	events := newHXEvents(s.content.Catalog())
	contact, err := ui.NewContact(s.recipient, events, events)
	if err != nil {
		s.serverError(c, err)
		return
	}

	action, err := contact.Submit(in)
	var verr *ui.ValidationError
	if errors.As(err, &verr) {
		form := formView{Input: in, Missing: map[string]bool{}, Error: "Please fill in every field."}
		for _, f := range verr.Missing {
			form.Missing[f] = true
		}
		s.renderForm(c, http.StatusUnprocessableEntity, form)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, action.String())
		return
	}
	key, _ := stateKey(c)
	events.write(c)
	c.HTML(http.StatusOK, "contact-form", formView{PageID: key.Page})
}

func (s *Server) renderForm(c *gin.Context, status int, form formView) {
	key, ok := stateKey(c)
	if isHTMX(c) {
		form.PageID = key.Page
		c.HTML(status, "contact-form", form)
		return
	}
	if !ok {
		// no page view to resume: render a fresh one
		key = session.Key{Session: sessionID(c), Page: session.NewID()}
	}
	st, err := s.store.Load(c.Request.Context(), key)
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.HTML(status, "page", s.pageView(key.Page, st, form))
}
