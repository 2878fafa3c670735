package cups

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/printer"
)

func (b *Backend) GetPrinterDriverOptions(ctx context.Context, printerName string) (printer.DriverOptions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/printers/"+url.PathEscape(printerName)+".ppd", nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no PPD available for printer %s", printerName)
	default:
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return parsePPD(resp.Body)
}

// parsePPD collects the choices of every OpenUI option and marks each
// option's default choice as selected.
func parsePPD(r io.Reader) (printer.DriverOptions, error) {
	opts := printer.DriverOptions{}
	defaults := make(map[string]string)
	current := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, "*") || strings.HasPrefix(line, "*%") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "*OpenUI "), strings.HasPrefix(line, "*JCLOpenUI "):
			current = ppdOptionKey(line[strings.Index(line, " ")+1:])
			if current != "" && opts[current] == nil {
				opts[current] = make(map[string]bool)
			}
		case strings.HasPrefix(line, "*CloseUI"), strings.HasPrefix(line, "*JCLCloseUI"):
			current = ""
		case strings.HasPrefix(line, "*Default"):
			key, value, ok := strings.Cut(strings.TrimPrefix(line, "*Default"), ":")
			if ok {
				defaults[key] = strings.TrimSpace(value)
			}
		case current != "" && strings.HasPrefix(line, "*"+current+" "):
			if choice := ppdChoice(strings.TrimPrefix(line, "*"+current+" ")); choice != "" {
				opts[current][choice] = false
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for key, choices := range opts {
		if def, ok := defaults[key]; ok {
			if _, ok := choices[def]; ok {
				choices[def] = true
			}
		}
	}
	return opts, nil
}

// ppdOptionKey extracts PageSize from "*PageSize/Media Size: PickOne".
func ppdOptionKey(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "*")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ppdChoice extracts Letter from `Letter/US Letter: "<<...>>"`.
func ppdChoice(s string) string {
	if i := strings.IndexAny(s, "/:"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
