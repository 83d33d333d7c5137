package chat

import (
	lru "github.com/hashicorp/golang-lru"

	"agendabot/models"
)

// fingerprintPrefixLen bounds how much of the message content enters the
// fingerprint, tolerating trailing differences the transport's text
// extraction may introduce.
const fingerprintPrefixLen = 60

// DefaultGuardCapacity is the fingerprint cache size used by the composed
// process.
const DefaultGuardCapacity = 2048

// DedupGuard suppresses re-processing of inbound messages the transport
// re-surfaces. Best effort: the cache is in-memory, capacity-bounded and
// process-lifetime only; a restart clears it.
type DedupGuard struct {
	cache *lru.Cache
}

// NewDedupGuard builds a guard with a fixed-capacity fingerprint cache.
func NewDedupGuard(capacity int) *DedupGuard {
	cache, err := lru.New(capacity)
	if err != nil {
		// Only reachable with a non-positive capacity.
		panic(err)
	}
	return &DedupGuard{cache: cache}
}

// Admit reports whether the message should be processed and, when it should,
// claims its fingerprint so a concurrent re-surfacing of the same message is
// dropped. selfEcho marks content the transport attributes to the bot's own
// outbound message and is never admitted. Cheap and non-blocking; sits on
// the hot path of every inbound message.
func (g *DedupGuard) Admit(clientName, content string, selfEcho bool) bool {
	if selfEcho {
		return false
	}
	fp := fingerprint(clientName, content)
	if g.cache.Contains(fp) {
		return false
	}
	g.cache.Add(fp, struct{}{})
	return true
}

// MarkProcessed refreshes the fingerprint's recency after the reply was
// delivered, keeping handled messages in the cache longest.
func (g *DedupGuard) MarkProcessed(clientName, content string) {
	g.cache.Add(fingerprint(clientName, content), struct{}{})
}

// Forget releases a claimed fingerprint. The pipeline uses it when a message
// was admitted but then skipped (bot disabled, ignored client), so the same
// message can be handled once the skip condition clears.
func (g *DedupGuard) Forget(clientName, content string) {
	g.cache.Remove(fingerprint(clientName, content))
}

func fingerprint(clientName, content string) string {
	prefix := []rune(content)
	if len(prefix) > fingerprintPrefixLen {
		prefix = prefix[:fingerprintPrefixLen]
	}
	return models.ClientKey(clientName) + ":" + string(prefix)
}
