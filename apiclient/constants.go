package apiclient

// Paths of the API resources exercised by the harness. Hrefs returned by the
// server are rooted at the same prefix, so they can be joined directly onto
// the configured base URL.
const (
	RepositoryPath = "/pulp/api/v2/repositories/"
	LoginPath      = "/pulp/api/v2/actions/login/"
)

// ErrorKeys is the exact key set of the error body accompanying every 4xx/5xx
// response. No "href" key (without the underscore) should ever be present.
var ErrorKeys = []string{
	"_href",
	"error",
	"error_message",
	"exception",
	"http_status",
	"traceback",
}

// CallReportKeys is the exact key set of the call report returned when a
// request dispatches asynchronous work.
var CallReportKeys = []string{
	"error",
	"result",
	"spawned_tasks",
}

// LoginKeys is the exact key set of a successful login response.
var LoginKeys = []string{
	"certificate",
	"key",
}
