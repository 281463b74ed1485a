// internal/engine/dynamic/evasion.go
package dynamic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/stealth"
)

// Evasion is the fixed set of spoofed browser signals applied before any navigation
type Evasion struct {
	Languages   []string
	Vendor      string
	Platform    string
	WebGLVendor string
	Renderer    string
	Width       int64
	Height      int64
}

// DefaultEvasion mirrors a desktop Chrome on macOS
func DefaultEvasion() Evasion {
	return Evasion{
		Languages:   []string{"en-US", "en"},
		Vendor:      "Google Inc.",
		Platform:    "MacIntel",
		WebGLVendor: "Intel Inc.",
		Renderer:    "Intel Iris OpenGL Engine",
		Width:       1200,
		Height:      900,
	}
}

// allocatorOptions builds the Chrome command line. enable-automation is left
// out on purpose; the default chromedp options would add it.
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	ev := opts.Evasion
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", fmt.Sprintf("%d,%d", ev.Width, ev.Height)),
		chromedp.Flag("lang", strings.Join(ev.Languages, ",")),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.UserAgent(opts.UserAgent),
	}

	if path := FindChrome(opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	return allocOpts
}

// evasionTasks runs once per session, before the first navigation
func evasionTasks(opts Options) chromedp.Tasks {
	ev := opts.Evasion
	tasks := chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			if _, err := page.AddScriptToEvaluateOnNewDocument(stealth.JS).Do(ctx); err != nil {
				return fmt.Errorf("inject stealth script: %w", err)
			}
			script, err := navigatorScript(ev)
			if err != nil {
				return err
			}
			if _, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx); err != nil {
				return fmt.Errorf("inject navigator overrides: %w", err)
			}
			return nil
		}),
		emulation.SetUserAgentOverride(opts.UserAgent).
			WithPlatform(ev.Platform).
			WithAcceptLanguage(strings.Join(ev.Languages, ",")),
		emulation.SetDeviceMetricsOverride(ev.Width, ev.Height, 1, false),
	}

	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		tasks = append(tasks, network.Enable(), network.SetExtraHTTPHeaders(headers))
	}

	return tasks
}

const navigatorTemplate = `(() => {
  const define = (obj, prop, value) => {
    try { Object.defineProperty(obj, prop, { get: () => value, configurable: true }); } catch (e) {}
  };
  define(Navigator.prototype, 'languages', %s);
  define(Navigator.prototype, 'vendor', %s);
  define(Navigator.prototype, 'platform', %s);
  const patch = (proto) => {
    if (!proto) return;
    const getParameter = proto.getParameter;
    proto.getParameter = function (p) {
      if (p === 37445) return %s;
      if (p === 37446) return %s;
      return getParameter.call(this, p);
    };
  };
  patch(window.WebGLRenderingContext && WebGLRenderingContext.prototype);
  patch(window.WebGL2RenderingContext && WebGL2RenderingContext.prototype);
})();`

// navigatorScript renders the navigator and WebGL overrides for ev
func navigatorScript(ev Evasion) (string, error) {
	values := []interface{}{ev.Languages, ev.Vendor, ev.Platform, ev.WebGLVendor, ev.Renderer}
	args := make([]interface{}, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode evasion value: %w", err)
		}
		args[i] = string(b)
	}
	return fmt.Sprintf(navigatorTemplate, args...), nil
}
