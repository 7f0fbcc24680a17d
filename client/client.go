// Package client talks to the JCoder online judge: it drives the CAS
// OAuth login flow and wraps the platform's JSON API endpoints.
package client

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hyj0824/ojAssistant/internal/session"
)

// DefaultBaseURL is the production OJ origin.
const DefaultBaseURL = "https://oj.cse.sustech.edu.cn"

// DefaultAuthorizeURL is the CAS OAuth authorize endpoint registered for
// the OJ client.
const DefaultAuthorizeURL = "https://cas.sustech.edu.cn/cas/oauth2.0/authorize" +
	"?response_type=code&client_id=FTdwYshmid34mMtRURbH5Naa6eclg4s6BVP7" +
	"&redirect_uri=https://oj.cse.sustech.edu.cn/api/login/cas/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"

const requestTimeout = 15 * time.Second

// Client is a cookie-holding HTTP client for the OJ platform. It is not
// safe for concurrent mutation; establish the session first, then share.
type Client struct {
	// BaseURL is the platform origin. Overridable for tests.
	BaseURL string
	// AuthorizeURL is the CAS OAuth authorize URL. Overridable for tests.
	AuthorizeURL string

	base       *url.URL
	jar        *cookiejar.Jar
	httpc      *http.Client // follows redirects
	noRedirect *http.Client // returns 3xx responses as-is
	csrfToken  string
	log        *slog.Logger
}

// New builds a client against the given origin. An empty baseURL selects
// the production platform.
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	// The platform's certificate chain does not validate on campus
	// networks, so verification is off, matching browser-exported
	// session behavior.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		AuthorizeURL: DefaultAuthorizeURL,
		base:         base,
		jar:          jar,
		httpc: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   requestTimeout,
		},
		noRedirect: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   requestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logger,
	}, nil
}

// SetSession installs a previously cached session into the cookie jar.
func (c *Client) SetSession(sess session.Session) {
	c.jar.SetCookies(c.base, []*http.Cookie{
		{Name: "JCoderID", Value: sess.ID, Path: "/"},
		{Name: "csrftoken", Value: sess.CSRFToken, Path: "/"},
	})
	c.csrfToken = sess.CSRFToken
}

// Session returns the current session tokens as read from the cookie jar.
func (c *Client) Session() session.Session {
	return session.Session{
		ID:        c.cookie("JCoderID"),
		CSRFToken: c.cookie("csrftoken"),
	}
}

func (c *Client) cookie(name string) string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// CheckSession probes whether the cached session is still accepted by
// the platform. A well-formed course list means it is; any error or
// list-less payload means re-authentication is needed.
func (c *Client) CheckSession() bool {
	courses, err := c.MyCourses()
	if err != nil {
		c.log.Debug("session probe failed", "err", err)
		return false
	}
	return courses.List != nil
}

// postForm issues a signed form POST against an API path and decodes the
// JSON response into out.
func (c *Client) postForm(path, referer string, form url.Values, out any) error {
	if c.csrfToken == "" {
		return ErrNoToken
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.applyDefaultHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", c.csrfToken)
	req.Header.Set("Referer", c.BaseURL+referer)
	req.Header.Set("Origin", c.BaseURL)
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	c.log.Debug("api call", "path", path)
	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		c.log.Debug("api call rejected", "path", path, "status", res.StatusCode)
		return &StatusError{Status: res.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Reason: fmt.Sprintf("%s returned non-JSON body", path)}
	}
	return nil
}

func (c *Client) applyDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
}

// MyCourses lists the courses the logged-in user is enrolled in.
func (c *Client) MyCourses() (*CourseList, error) {
	form := url.Values{
		"page":   {"1"},
		"offset": {"40"},
		"query":  {""},
		"tags":   {"[]"},
	}
	var out CourseList
	if err := c.postForm("/api/union/my_courses_list/", "/union", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HomeworksList lists homeworks for a course.
func (c *Client) HomeworksList(courseID int) (*HomeworkList, error) {
	form := url.Values{
		"page":     {"1"},
		"offset":   {"40"},
		"courseId": {strconv.Itoa(courseID)},
		"category": {"0"},
	}
	var out HomeworkList
	referer := fmt.Sprintf("/course/%d", courseID)
	if err := c.postForm("/api/course/homeworks/list/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HomeworkDetail fetches score/completion details for one homework.
func (c *Client) HomeworkDetail(homeworkID, courseID int) (*HomeworkInfo, error) {
	form := url.Values{
		"homeworkId": {strconv.Itoa(homeworkID)},
		"courseId":   {strconv.Itoa(courseID)},
	}
	var out HomeworkInfo
	referer := fmt.Sprintf("/course/%d/homework/%d", courseID, homeworkID)
	if err := c.postForm("/api/homework/general/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProblemsList lists the problems of a homework.
func (c *Client) ProblemsList(homeworkID, courseID int) (*ProblemList, error) {
	form := url.Values{
		"homeworkId": {strconv.Itoa(homeworkID)},
		"courseId":   {strconv.Itoa(courseID)},
	}
	var out ProblemList
	referer := fmt.Sprintf("/course/%d/homework/%d", courseID, homeworkID)
	if err := c.postForm("/api/homework/problems/list/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProblemDetail fetches the statement and limits of one problem.
func (c *Client) ProblemDetail(problemID, homeworkID, courseID int) (*ProblemInfo, error) {
	form := url.Values{
		"problemId":  {strconv.Itoa(problemID)},
		"homeworkId": {strconv.Itoa(homeworkID)},
		"courseId":   {strconv.Itoa(courseID)},
	}
	var out ProblemInfo
	referer := fmt.Sprintf("/course/%d/homework/%d", courseID, homeworkID)
	if err := c.postForm("/api/homework/problems/info/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentRecords fetches the submission history for one problem, newest
// first.
func (c *Client) RecentRecords(problemID, homeworkID, courseID int) (*RecordList, error) {
	form := url.Values{
		"problemId":  {strconv.Itoa(problemID)},
		"homeworkId": {strconv.Itoa(homeworkID)},
		"courseId":   {strconv.Itoa(courseID)},
	}
	var out RecordList
	referer := fmt.Sprintf("/course/%d/homework/%d", courseID, homeworkID)
	if err := c.postForm("/api/homework/submit/recent_records/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit uploads a multi-file Java solution. files maps filename (with
// extension) to source text. The returned record id identifies the
// grading run to poll.
func (c *Client) Submit(homeworkID, problemID, courseID int, files map[string]string) (*SubmitResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to submit")
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("failed to encode files: %w", err)
	}

	form := url.Values{
		"homeworkId": {strconv.Itoa(homeworkID)},
		"problemId":  {strconv.Itoa(problemID)},
		"courseId":   {strconv.Itoa(courseID)},
		// language 3 is the multi-file Java submission type
		"language": {"3"},
		"subGroup": {"false"},
		"files":    {string(filesJSON)},
	}
	var out SubmitResponse
	referer := fmt.Sprintf("/course/%d/homework/%d", courseID, homeworkID)
	if err := c.postForm("/api/homework/submit/objective/", referer, form, &out); err != nil {
		return nil, err
	}
	if out.RecordID == 0 {
		return nil, &MalformedResponseError{Reason: "submit response missing recordId"}
	}
	return &out, nil
}

// Result fetches the grading state of a submission record. While the
// judge is still running, ResultState is ResultPending.
func (c *Client) Result(recordID, courseID, homeworkID int) (*GradingResult, error) {
	form := url.Values{
		"recordId":   {strconv.Itoa(recordID)},
		"courseId":   {strconv.Itoa(courseID)},
		"homeworkId": {strconv.Itoa(homeworkID)},
	}
	var out GradingResult
	referer := fmt.Sprintf("/course/%d/homework/%d/record/%d", courseID, homeworkID, recordID)
	if err := c.postForm("/api/record/result/", referer, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
