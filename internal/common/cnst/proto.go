package cnst

// HTTP header names used by the SDK
const (
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderAccept         = "Accept"
	HeaderUserAgent      = "User-Agent"
	HeaderCookie         = "Cookie"
	HeaderTransactionID  = "X-Global-Transaction-Id"
	HeaderLearningOptOut = "X-Watson-Learning-Opt-Out"
)

// SessionCookie is the cookie name carrying the recognition session id
const SessionCookie = "SESSIONID"

const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// SchemeType is a URL scheme
type SchemeType string

const (
	SchemeHTTP  SchemeType = "http"
	SchemeHTTPS SchemeType = "https"
	SchemeWS    SchemeType = "ws"
	SchemeWSS   SchemeType = "wss"
)

func (s SchemeType) String() string {
	return string(s)
}
