package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Request is the shared HTTP client for every upstream data source. Retries
// stay at zero: a failed call counts as failed for the whole refresh cycle
// and the next scheduled cycle is the retry.
var Request = resty.New().
	SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}).
	SetTimeout(10 * time.Second).
	SetHeader("User-Agent", "MISP/1.0 (Meme Intelligence Social Platform)")
