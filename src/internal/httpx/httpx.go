package httpx

import "net/http"

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultUA identifies this tool to the remote catalog.
const DefaultUA = "isfdbmeta/1.0 (+https://www.isfdb.org/wiki/index.php/ISFDB:Bots)"

// SetUA sets ua (or DefaultUA when ua is empty) on the request.
func SetUA(req *http.Request, ua string) {
	if req == nil {
		return
	}
	if ua == "" {
		ua = DefaultUA
	}
	req.Header.Set("User-Agent", ua)
}
