// Package api builds card registration requests, hands them to a pluggable
// [Transport], and classifies what comes back.
//
// # Request Building
//
// [NewRegisterCardRequest] turns the registration fields and the account
// path identifiers into a transport-agnostic [Request]:
//
//	POST /rest/v1/{clientId}/users/{userId}/accounts/{accountId}/cards
//	{"token":"...","cardNumber":"...","expiration":"MMYY","cvv":"..."}
//
// The configured host name and sandbox flag travel with the request; turning
// them into a base address is the transport's job.
//
// # Transports
//
// A [Transport] accepts a request and later delivers exactly one [Delivery]:
// a success body, an error body with its status, or a raw failure.
// [HTTPTransport] is the net/http implementation. Tests plug in fakes.
//
// # Classification
//
// [Classify] maps a Delivery to either a decoded [Card] or one of the typed
// errors from the apierrors package:
//
//   - raw failure, or a non-2xx reply without a JSON body: NetworkError
//   - non-2xx reply with a JSON body: APIReplyError carrying the body verbatim
//   - 2xx reply with a card object: the Card
//
// # Thread Safety
//
// [HTTPTransport] is safe for concurrent use. Each Submit runs on its own
// goroutine and calls its completion exactly once.
package api
