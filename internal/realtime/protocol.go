// README: Wire protocol for the realtime data layer; JSON envelopes over one websocket.
package realtime

import "encoding/json"

type Kind string

const (
	KindQuery     Kind = "query"
	KindMutation  Kind = "mutation"
	KindSubscribe Kind = "subscribe"
	KindResult    Kind = "result"
	KindPush      Kind = "push"
)

// Operation names understood by the backend.
const (
	OpGetProfile         = "GetProfile"
	OpGetNearbyProviders = "GetNearbyProviders"
	OpGetNearbyRide      = "GetNearbyRide"
	OpRequestRide        = "RequestRide"
	OpAcceptRide         = "AcceptRide"
	OpReportLocation     = "ReportLocation"
	OpNearbyRidePush     = "NearbyRideSubscription"
)

// Envelope frames every message in both directions. ID correlates a result
// with its query or mutation; pushes carry the id of the subscription that
// produced them. Error is transport-level only; application-level rejection
// travels inside the payload as ok:false.
type Envelope struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}
