package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener launches URLs in the user's browser
type Opener struct {
	// Optional override from config. Template var: {url}
	CustomCommand string
}

// Open launches url in a browser without waiting for it to exit
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("no URL to open")
	}

	// Use custom command if configured
	if o.CustomCommand != "" {
		return o.openCustom(url)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func (o *Opener) openCustom(url string) error {
	cmdStr := strings.ReplaceAll(o.CustomCommand, "{url}", shellEscape(url))
	return exec.Command("bash", "-c", cmdStr).Start()
}

// shellEscape escapes a string for safe use in shell commands
func shellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
