package files

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Community-maintained JUnit tests, hosted outside the platform.
const unitTestBaseURL = "https://hexo-blog-netlify.oss-cn-shenzhen.aliyuncs.com/junittest"

const unitTestFileName = "MainTest.java"

var ossMessagePattern = regexp.MustCompile(`<Message>(.*?)</Message>`)

// DownloadUnitTest fetches the community unit test for a problem into
// workDir and returns the saved path. A missing test (404, or the
// bucket's XML error page) is reported as an error naming the problem,
// not as a transport failure.
func DownloadUnitTest(courseCode string, homeworkID, problemID int, problemName, workDir string) (string, error) {
	target := fmt.Sprintf("%s/%s/%d/%d_%s/%s",
		unitTestBaseURL, courseCode, homeworkID, problemID, url.QueryEscape(problemName), unitTestFileName)

	httpc := &http.Client{Timeout: 10 * time.Second}
	res, err := httpc.Get(target)
	if err != nil {
		return "", fmt.Errorf("unit test download failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("no unit test for this problem yet; contributions are welcome via pull request")
	default:
		return "", fmt.Errorf("unit test download failed with HTTP %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read unit test: %w", err)
	}

	// The bucket answers 200 with an XML error document for unknown
	// keys.
	if trimmed := strings.TrimSpace(string(body)); strings.HasPrefix(trimmed, "<?xml") && strings.Contains(trimmed, "<Error>") {
		if m := ossMessagePattern.FindStringSubmatch(trimmed); m != nil {
			return "", fmt.Errorf("no unit test for this problem: %s", m[1])
		}
		return "", fmt.Errorf("no unit test for this problem yet")
	}

	path := filepath.Join(workDir, unitTestFileName)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("failed to save unit test: %w", err)
	}
	return path, nil
}
