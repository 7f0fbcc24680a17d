package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/hyj0824/ojAssistant/internal/session"
)

// maxRedirectHops bounds the manual redirect chase after a successful
// CAS login. A longer chain means the SSO flow has changed shape.
const maxRedirectHops = 10

// executionPattern extracts the hidden one-shot flow token from the CAS
// login form. CAS renders it as <input name="execution" value="...">.
var executionPattern = regexp.MustCompile(`name="execution" value="([^"]+)"`)

// extractExecution pulls the execution token out of a login page body.
func extractExecution(body string) (string, bool) {
	m := executionPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Login drives the CAS OAuth handshake with the given credentials and
// returns a complete session. It never retries; on ErrBadCredentials the
// caller may prompt again, any other error means the flow itself broke.
func (c *Client) Login(username, password string) (session.Session, error) {
	// Warm up: the platform sets baseline cookies on its landing page.
	if err := c.getDiscard(c.BaseURL, c.BaseURL, true); err != nil {
		return session.Session{}, fmt.Errorf("failed to reach platform: %w", err)
	}

	// The authorize endpoint must bounce us to the identity provider.
	c.log.Debug("auth step", "step", StepAuthorize)
	res, err := c.get(c.AuthorizeURL, c.BaseURL, false)
	if err != nil {
		return session.Session{}, fmt.Errorf("authorize request failed: %w", err)
	}
	loginURL, ok := redirectTarget(res)
	drain(res)
	if !ok {
		return session.Session{}, &ProtocolError{
			Step:   StepAuthorize,
			Status: res.StatusCode,
			Reason: "expected 302 redirect to login page",
		}
	}

	c.log.Debug("auth step", "step", StepLoginPage, "url", loginURL)
	res, err = c.get(loginURL, c.BaseURL, true)
	if err != nil {
		return session.Session{}, fmt.Errorf("login page request failed: %w", err)
	}
	page, readErr := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return session.Session{}, &ProtocolError{
			Step:   StepLoginPage,
			Status: res.StatusCode,
			Reason: "login page not reachable",
		}
	}
	if readErr != nil {
		return session.Session{}, fmt.Errorf("failed to read login page: %w", readErr)
	}
	execution, ok := extractExecution(string(page))
	if !ok {
		return session.Session{}, &ProtocolError{
			Step:   StepLoginPage,
			Reason: "execution token not found on login page",
		}
	}

	// Submit credentials. CAS answers 302 on success; 401, or 200 with
	// the form re-rendered, means the credentials were rejected.
	c.log.Debug("auth step", "step", StepCredentials)
	form := url.Values{
		"username":  {username},
		"password":  {password},
		"execution": {execution},
		"_eventId":  {"submit"},
	}
	res, err = c.postFormNoRedirect(loginURL, loginURL, form)
	if err != nil {
		return session.Session{}, fmt.Errorf("credential submit failed: %w", err)
	}
	next, ok := redirectTarget(res)
	drain(res)
	if !ok {
		if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusOK {
			return session.Session{}, ErrBadCredentials
		}
		return session.Session{}, &ProtocolError{
			Step:   StepCredentials,
			Status: res.StatusCode,
			Reason: "expected 302 redirect after login",
		}
	}

	if err := c.chaseRedirects(next); err != nil {
		return session.Session{}, err
	}

	if c.cookie("JCoderID") == "" {
		return session.Session{}, &ProtocolError{
			Step:   StepSessionCookie,
			Reason: "JCoderID cookie not set after login",
		}
	}

	if err := c.mintCSRFToken(); err != nil {
		return session.Session{}, err
	}

	sess := c.Session()
	if !sess.Valid() {
		return session.Session{}, &ProtocolError{
			Step:   StepCSRFToken,
			Reason: "login finished with incomplete session",
		}
	}
	c.log.Debug("login complete")
	return sess, nil
}

// chaseRedirects follows the post-login redirect chain hop by hop until
// it lands back on the platform, then performs one final auto-following
// GET to settle the authenticated page.
func (c *Client) chaseRedirects(current string) error {
	for hop := 0; hop < maxRedirectHops; hop++ {
		c.log.Debug("auth step", "step", StepRedirectChain, "hop", hop+1, "url", current)
		res, err := c.get(current, "", false)
		if err != nil {
			return fmt.Errorf("redirect hop %d failed: %w", hop+1, err)
		}
		next, ok := redirectTarget(res)
		drain(res)
		if !ok {
			// Chain ended on its own; the cookie check decides
			// whether we actually arrived.
			return nil
		}
		current = next
		if strings.HasPrefix(current, c.BaseURL) {
			return c.getDiscard(current, "", true)
		}
	}
	return &ProtocolError{
		Step:   StepRedirectChain,
		Reason: fmt.Sprintf("no platform page after %d redirects", maxRedirectHops),
	}
}

// mintCSRFToken hits the CORS bootstrap endpoint, which sets the
// csrftoken cookie for the established session.
func (c *Client) mintCSRFToken() error {
	c.log.Debug("auth step", "step", StepCSRFToken)
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/cors/", nil)
	if err != nil {
		return fmt.Errorf("failed to create cors request: %w", err)
	}
	c.applyDefaultHeaders(req)
	req.Header.Set("Referer", c.BaseURL+"/home")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("cors request failed: %w", err)
	}
	drain(res)
	if res.StatusCode != http.StatusOK {
		return &ProtocolError{
			Step:   StepCSRFToken,
			Status: res.StatusCode,
			Reason: "cors endpoint rejected the session",
		}
	}

	token := c.cookie("csrftoken")
	if token == "" {
		return &ProtocolError{
			Step:   StepCSRFToken,
			Reason: "csrftoken cookie not set by cors endpoint",
		}
	}
	c.csrfToken = token
	return nil
}

func (c *Client) get(rawURL, referer string, follow bool) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyDefaultHeaders(req)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	if follow {
		return c.httpc.Do(req)
	}
	return c.noRedirect.Do(req)
}

func (c *Client) getDiscard(rawURL, referer string, follow bool) error {
	res, err := c.get(rawURL, referer, follow)
	if err != nil {
		return err
	}
	drain(res)
	return nil
}

func (c *Client) postFormNoRedirect(rawURL, referer string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyDefaultHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	return c.noRedirect.Do(req)
}

// redirectTarget returns the resolved Location of a 3xx response.
func redirectTarget(res *http.Response) (string, bool) {
	switch res.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
	default:
		return "", false
	}
	loc, err := res.Location()
	if err != nil {
		return "", false
	}
	return loc.String(), true
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
