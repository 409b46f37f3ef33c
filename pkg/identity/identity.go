package identity

// Source records where an identity came from, in decreasing order of
// stability: an explicit user id outlives devices, a visitor cookie
// outlives sessions, an IP address outlives nothing much.
type Source string

const (
	SourceUser    Source = "user"
	SourceVisitor Source = "visitor"
	SourceIP      Source = "ip"
)

// Identity is the resolved caller token used to key plan and quota state.
type Identity struct {
	Value  string
	Source Source
}
