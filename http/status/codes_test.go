package status

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var knownCodes = []Code{
	Continue, SwitchingProtocols, Processing, EarlyHints,
	OK, Created, Accepted, NonAuthoritativeInfo, NoContent, ResetContent, PartialContent,
	MultiStatus, AlreadyReported, IMUsed,
	MultipleChoices, MovedPermanently, Found, SeeOther, NotModified, UseProxy,
	TemporaryRedirect, PermanentRedirect,
	BadRequest, Unauthorized, PaymentRequired, Forbidden, NotFound, MethodNotAllowed,
	NotAcceptable, ProxyAuthRequired, RequestTimeout, Conflict, Gone, LengthRequired,
	PreconditionFailed, RequestEntityTooLarge, RequestURITooLong, UnsupportedMediaType,
	RequestedRangeNotSatisfiable, ExpectationFailed, Teapot, MisdirectedRequest,
	UnprocessableEntity, Locked, FailedDependency, TooEarly, UpgradeRequired,
	PreconditionRequired, TooManyRequests, RequestHeaderFieldsTooLarge,
	UnavailableForLegalReasons,
	InternalServerError, NotImplemented, BadGateway, ServiceUnavailable, GatewayTimeout,
	HTTPVersionNotSupported, VariantAlsoNegotiates, InsufficientStorage, LoopDetected,
	NotExtended, NetworkAuthenticationRequired,
}

func TestText(t *testing.T) {
	for _, code := range knownCodes {
		require.NotEqual(t, "Unknown Status Code", Text(code))
	}

	require.Equal(t, "Unknown Status Code", Text(Code(999)))
}

func TestAppendCode(t *testing.T) {
	for _, code := range knownCodes {
		got := string(AppendCode(nil, code))
		require.Equal(t, strconv.Itoa(int(code)), got)
	}
}

func BenchmarkAppendCode(b *testing.B) {
	buf := make([]byte, 0, 3)

	for range b.N {
		buf = AppendCode(buf[:0], OK)
	}
}
