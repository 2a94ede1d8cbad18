package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tebeka/selenium"
)

// WebDriver identifies a supported browser automation backend.
type WebDriver int

const (
	Chrome WebDriver = iota
	Firefox
)

// ParseWebDriver maps a --webdriver argument onto a WebDriver.
func ParseWebDriver(name string) (WebDriver, error) {
	switch strings.ToLower(name) {
	case "chrome":
		return Chrome, nil
	case "firefox":
		return Firefox, nil
	default:
		return 0, fmt.Errorf("unknown webdriver %q (supported: chrome, firefox)", name)
	}
}

func (d WebDriver) String() string {
	switch d {
	case Chrome:
		return "chrome"
	case Firefox:
		return "firefox"
	default:
		return fmt.Sprintf("webdriver(%d)", int(d))
	}
}

// Service owns the driver process (chromedriver or geckodriver) and
// opens browser sessions against it. It satisfies Factory.
type Service struct {
	driver  WebDriver
	port    int
	service *selenium.Service
}

// NewService starts the driver binary at binPath listening on port. The
// binary's directory is prepended to PATH so the driver finds its
// browser the same way a shell invocation would.
func NewService(driver WebDriver, binPath string, port int) (*Service, error) {
	if abs, err := filepath.Abs(binPath); err == nil {
		os.Setenv("PATH", filepath.Dir(abs)+string(os.PathListSeparator)+os.Getenv("PATH"))
	}

	var (
		svc *selenium.Service
		err error
	)
	switch driver {
	case Chrome:
		svc, err = selenium.NewChromeDriverService(binPath, port)
	case Firefox:
		svc, err = selenium.NewGeckoDriverService(binPath, port)
	default:
		return nil, fmt.Errorf("unsupported webdriver %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start %s driver service: %w", driver, err)
	}

	return &Service{driver: driver, port: port, service: svc}, nil
}

// NewSession opens a browser window against the running driver service.
func (s *Service) NewSession() (Session, error) {
	caps := selenium.Capabilities{"browserName": s.driver.String()}
	wd, err := selenium.NewRemote(caps, s.urlPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s session: %w", s.driver, err)
	}
	return &seleniumSession{wd: wd}, nil
}

// chromedriver serves the WebDriver protocol under /wd/hub, geckodriver
// at the root.
func (s *Service) urlPrefix() string {
	if s.driver == Chrome {
		return fmt.Sprintf("http://localhost:%d/wd/hub", s.port)
	}
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Stop terminates the driver process.
func (s *Service) Stop() error {
	return s.service.Stop()
}

type seleniumSession struct {
	wd selenium.WebDriver
}

func (s *seleniumSession) Lookup(ctx context.Context, pageURL string, targets []Target) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.wd.Get(pageURL); err != nil {
		if isInvalidSession(err) {
			return nil, fmt.Errorf("navigating to %s: %w", pageURL, ErrSessionLost)
		}
		log.Errorf("Failed to get %s (%s)", pageURL, err)
		return nil, nil
	}

	var results []string
	for _, target := range targets {
		el, err := s.wd.FindElement(selenium.ByXPATH, target.XPath)
		if err != nil {
			if isInvalidSession(err) {
				return nil, fmt.Errorf("finding %s: %w", target.XPath, ErrSessionLost)
			}
			continue
		}

		var value string
		if target.Attr != "" {
			value, err = el.GetAttribute(target.Attr)
		} else {
			value, err = el.Text()
		}
		if err != nil {
			if isInvalidSession(err) {
				return nil, fmt.Errorf("reading %s: %w", target.XPath, ErrSessionLost)
			}
			continue
		}
		results = append(results, value)
	}
	return results, nil
}

func (s *seleniumSession) Quit() error {
	return s.wd.Quit()
}

// isInvalidSession matches the W3C "invalid session id" error, with a
// string fallback for drivers that predate structured errors.
func isInvalidSession(err error) bool {
	if err == nil {
		return false
	}
	var serr *selenium.Error
	if errors.As(err, &serr) {
		return serr.Err == "invalid session id"
	}
	return strings.Contains(err.Error(), "invalid session id")
}
