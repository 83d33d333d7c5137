package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupGuard_AdmitOnce(t *testing.T) {
	guard := NewDedupGuard(16)

	assert.True(t, guard.Admit("Ana", "hola", false))
	// Claimed at admit time: a re-surfacing before MarkProcessed is dropped.
	assert.False(t, guard.Admit("Ana", "hola", false))

	guard.MarkProcessed("Ana", "hola")
	assert.False(t, guard.Admit("Ana", "hola", false))
}

func TestDedupGuard_DistinctClientsAndContent(t *testing.T) {
	guard := NewDedupGuard(16)

	assert.True(t, guard.Admit("Ana", "hola", false))
	assert.True(t, guard.Admit("Bob", "hola", false))
	assert.True(t, guard.Admit("Ana", "quiero una cita", false))
}

func TestDedupGuard_SelfEchoNeverAdmitted(t *testing.T) {
	guard := NewDedupGuard(16)

	assert.False(t, guard.Admit("Ana", "hola", true))
	// A self-echo does not claim the fingerprint for the real message.
	assert.True(t, guard.Admit("Ana", "hola", false))
}

func TestDedupGuard_PrefixBoundsFingerprint(t *testing.T) {
	guard := NewDedupGuard(16)

	base := strings.Repeat("x", fingerprintPrefixLen)
	assert.True(t, guard.Admit("Ana", base+" trailing difference", false))
	// Only the prefix enters the fingerprint; trailing differences collapse.
	assert.False(t, guard.Admit("Ana", base+" another tail", false))
}

func TestDedupGuard_Forget(t *testing.T) {
	guard := NewDedupGuard(16)

	assert.True(t, guard.Admit("Ana", "hola", false))
	guard.Forget("Ana", "hola")
	assert.True(t, guard.Admit("Ana", "hola", false))
}

func TestDedupGuard_CapacityBounded(t *testing.T) {
	guard := NewDedupGuard(4)

	for i := 0; i < 8; i++ {
		assert.True(t, guard.Admit("Ana", fmt.Sprintf("message %d", i), false))
	}
	// The oldest fingerprints were evicted, so an early message is admitted
	// again. Best-effort by design.
	assert.True(t, guard.Admit("Ana", "message 0", false))
}
