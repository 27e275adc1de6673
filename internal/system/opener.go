package system

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener hands a URL to the user's browser.
type Opener interface {
	Open(rawURL string) error
}

// BrowserOpener launches the platform's URL handler.
type BrowserOpener struct{}

// Open implements Opener. Only http and https URLs are accepted.
func (BrowserOpener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}

	name, args := openCommand(runtime.GOOS)
	cmd := exec.Command(name, append(args, u.String())...) // #nosec G204 -- fixed opener, validated url
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// RecordingOpener remembers the URLs it was asked to open.
type RecordingOpener struct {
	URLs []string
	Err  error
}

// Open implements Opener.
func (o *RecordingOpener) Open(rawURL string) error {
	if o.Err != nil {
		return o.Err
	}
	o.URLs = append(o.URLs, rawURL)
	return nil
}
