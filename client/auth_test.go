package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// casFixture shapes the mock identity provider for one test.
type casFixture struct {
	execution    string
	password     string
	authorize302 bool
	renderToken  bool
	setSession   bool
	// status for rejected credentials, 200 re-renders the form
	rejectStatus int
}

func defaultFixture() casFixture {
	return casFixture{
		execution:    "e1s1-flow-token",
		password:     "hunter2",
		authorize302: true,
		renderToken:  true,
		setSession:   true,
		rejectStatus: http.StatusOK,
	}
}

// newCASServer serves both the identity provider and the platform on
// one origin, so redirect chasing lands back on the client's base URL.
func newCASServer(t *testing.T, fx casFixture, credentialForm *url.Values) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>home</html>")
	})
	mux.HandleFunc("/cas/authorize", func(w http.ResponseWriter, r *http.Request) {
		if !fx.authorize302 {
			fmt.Fprint(w, "<html>unexpected landing page</html>")
			return
		}
		http.Redirect(w, r, "/cas/login", http.StatusFound)
	})
	mux.HandleFunc("/cas/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if fx.renderToken {
				fmt.Fprintf(w, `<form><input type="hidden" name="execution" value="%s"/></form>`, fx.execution)
			} else {
				fmt.Fprint(w, "<html>maintenance</html>")
			}
			return
		}
		require.NoError(t, r.ParseForm())
		if credentialForm != nil {
			*credentialForm = r.PostForm
		}
		if r.PostFormValue("password") != fx.password || r.PostFormValue("execution") != fx.execution {
			w.WriteHeader(fx.rejectStatus)
			fmt.Fprintf(w, `<form><input type="hidden" name="execution" value="%s"/></form>`, fx.execution)
			return
		}
		http.Redirect(w, r, "/cas/ticket", http.StatusFound)
	})
	mux.HandleFunc("/cas/ticket", func(w http.ResponseWriter, r *http.Request) {
		if fx.setSession {
			http.SetCookie(w, &http.Cookie{Name: "JCoderID", Value: "abc123", Path: "/"})
		}
		http.Redirect(w, r, "/home", http.StatusFound)
	})
	mux.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>dashboard</html>")
	})
	mux.HandleFunc("/api/cors/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok456", Path: "/"})
		fmt.Fprint(w, "{}")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newLoginClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(srv.URL, discardLogger())
	require.NoError(t, err)
	c.AuthorizeURL = srv.URL + "/cas/authorize"
	return c
}

func TestLoginSuccess(t *testing.T) {
	var form url.Values
	srv := newCASServer(t, defaultFixture(), &form)
	c := newLoginClient(t, srv)

	sess, err := c.Login("student", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.ID)
	assert.Equal(t, "tok456", sess.CSRFToken)
	assert.True(t, sess.Valid())
	assert.Equal(t, sess, c.Session())

	assert.Equal(t, "student", form.Get("username"))
	assert.Equal(t, "e1s1-flow-token", form.Get("execution"))
	assert.Equal(t, "submit", form.Get("_eventId"))
}

func TestLoginRejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			fx := defaultFixture()
			fx.rejectStatus = status
			srv := newCASServer(t, fx, nil)
			c := newLoginClient(t, srv)

			_, err := c.Login("student", "wrong-password")
			assert.ErrorIs(t, err, ErrBadCredentials)
		})
	}
}

func TestLoginAuthorizeNotRedirecting(t *testing.T) {
	fx := defaultFixture()
	fx.authorize302 = false
	srv := newCASServer(t, fx, nil)
	c := newLoginClient(t, srv)

	_, err := c.Login("student", "hunter2")
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepAuthorize, perr.Step)
	assert.NotErrorIs(t, err, ErrBadCredentials)
}

func TestLoginMissingExecutionToken(t *testing.T) {
	fx := defaultFixture()
	fx.renderToken = false
	srv := newCASServer(t, fx, nil)
	c := newLoginClient(t, srv)

	_, err := c.Login("student", "hunter2")
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepLoginPage, perr.Step)
}

func TestLoginSessionCookieNotSet(t *testing.T) {
	fx := defaultFixture()
	fx.setSession = false
	srv := newCASServer(t, fx, nil)
	c := newLoginClient(t, srv)

	_, err := c.Login("student", "hunter2")
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepSessionCookie, perr.Step)
}

func TestExtractExecution(t *testing.T) {
	token, ok := extractExecution(`<input type="hidden" name="execution" value="e2s4"/>`)
	require.True(t, ok)
	assert.Equal(t, "e2s4", token)

	_, ok = extractExecution(`<input type="hidden" name="lt" value="e2s4"/>`)
	assert.False(t, ok)
}
