package deeplink

import (
	"context"
	"os/exec"
	"runtime"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/logs"
)

// Opener hands a URI to whatever the host uses to launch it.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, uri string) error

func (f OpenerFunc) Open(ctx context.Context, uri string) error { return f(ctx, uri) }

// ExecOpener launches URIs with the desktop's default handler.
type ExecOpener struct{}

func (ExecOpener) Open(ctx context.Context, uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", uri)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", uri)
	}
	if err := cmd.Run(); err != nil {
		return apperr.New(apperr.ErrLaunch, "open uri", uri, err)
	}
	return nil
}

// Launcher opens a primary URI and, when that fails, the application's store
// listing and then its web listing.
type Launcher struct {
	Opener     Opener
	AppPackage string
}

// NewLauncher returns a Launcher for appPackage, or DefaultAppPackage.
func NewLauncher(opener Opener, appPackage string) *Launcher {
	if appPackage == "" {
		appPackage = DefaultAppPackage
	}
	return &Launcher{Opener: opener, AppPackage: appPackage}
}

// Launch tries uri, then the store URI, then the web URI, each only after the
// previous attempt failed. It reports whether any attempt succeeded.
func (l *Launcher) Launch(ctx context.Context, uri string) bool {
	attempts := []string{uri, FallbackStoreURI(l.AppPackage), FallbackWebURI(l.AppPackage)}

	for i, target := range attempts {
		err := l.Opener.Open(ctx, target)
		if err == nil {
			if i > 0 {
				logs.Logger.Info("opened fallback", "uri", target)
			}
			return true
		}
		logs.Logger.Warn("launch failed", "uri", target, "err", err)
		if ctx.Err() != nil {
			return false
		}
	}

	logs.Logger.Error("no handler accepted the link or its fallbacks", "uri", uri)
	return false
}
