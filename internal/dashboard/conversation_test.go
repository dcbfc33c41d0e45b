package dashboard

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	wire "partnerhub/pkg/models"

	"github.com/stretchr/testify/require"
)

const self = "7709446589"

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func msg(id, from, to, content string, minutes int) wire.WhatsAppMessage {
	return wire.WhatsAppMessage{
		ID:        id,
		Sender:    from,
		Recipient: to,
		Content:   content,
		Status:    wire.StatusSent,
		Timestamp: t0.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestScenarioSingleCounterpart(t *testing.T) {
	msgs := []wire.WhatsAppMessage{
		msg("2", "B", "A", "hi back", 2),
		msg("1", "A", "B", "hi", 1),
	}

	contacts := Contacts(msgs, "A")
	require.Len(t, contacts, 1)
	require.Equal(t, "B", contacts[0].PhoneNumber)
	require.Equal(t, "hi back", contacts[0].Preview)

	thread := Thread(msgs, "B")
	require.Len(t, thread, 2)
	require.Equal(t, "1", thread[0].ID)
	require.Equal(t, "2", thread[1].ID)
}

func TestEmptyLog(t *testing.T) {
	require.Empty(t, Contacts(nil, self))
	require.Empty(t, Thread(nil, "B"))
	require.Equal(t, Stats{}, ComputeStats(nil, self))
}

func TestCounterpart(t *testing.T) {
	cases := []struct {
		m    wire.WhatsAppMessage
		want string
		ok   bool
	}{
		{msg("1", self, "B", "", 0), "B", true},
		{msg("2", "B", self, "", 0), "B", true},
		{msg("3", "B", "C", "", 0), "B", true},
		{msg("4", self, self, "", 0), "", false},
	}
	for _, tc := range cases {
		got, ok := Counterpart(tc.m, self)
		require.Equal(t, tc.ok, ok, tc.m.ID)
		require.Equal(t, tc.want, got, tc.m.ID)
	}
}

func TestContactsKeepLatestAndBreakTiesByNumber(t *testing.T) {
	msgs := []wire.WhatsAppMessage{
		msg("1", self, "C", "old", 1),
		msg("2", "C", self, "newest from C", 5),
		msg("3", "B", self, "from B", 5),
		msg("4", self, "D", "earlier", 3),
		msg("5", self, self, "note to self", 9),
	}

	contacts := Contacts(msgs, self)
	var numbers []string
	for _, c := range contacts {
		numbers = append(numbers, c.PhoneNumber)
	}
	require.Equal(t, []string{"B", "C", "D"}, numbers)
	require.Equal(t, "newest from C", contacts[1].Preview)
}

func TestContactsIgnoreInputOrder(t *testing.T) {
	a := msg("a", "B", self, "first", 1)
	b := msg("b", self, "B", "second", 1)

	x := Contacts([]wire.WhatsAppMessage{a, b}, self)
	y := Contacts([]wire.WhatsAppMessage{b, a}, self)
	require.Equal(t, x, y)
	require.Equal(t, "second", x[0].Preview)
}

func TestPreviewTruncation(t *testing.T) {
	exact := strings.Repeat("x", PreviewLength)
	require.Equal(t, exact, Preview(exact))

	long := strings.Repeat("y", PreviewLength+1)
	require.Equal(t, strings.Repeat("y", PreviewLength)+"...", Preview(long))

	// Counted in characters, not bytes.
	hindi := strings.Repeat("न", PreviewLength)
	require.Equal(t, hindi, Preview(hindi))
}

func TestThreadOrderAndMembership(t *testing.T) {
	msgs := []wire.WhatsAppMessage{
		msg("3", self, "B", "c", 2),
		msg("1", "B", self, "a", 1),
		msg("x", self, "C", "other", 1),
		msg("2", self, "B", "b", 2),
	}
	thread := Thread(msgs, "B")
	var ids []string
	for _, m := range thread {
		ids = append(ids, m.ID)
	}
	require.Equal(t, []string{"1", "2", "3"}, ids)
	require.Nil(t, Thread(msgs, ""))
}

// Random logs: contacts are exactly the distinct non-self counterparts and
// every thread is ascending and only holds its counterpart's messages.
func TestDerivationProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	parties := []string{self, "9100000001", "9100000002", "9100000003", "9100000004"}

	for round := 0; round < 50; round++ {
		var msgs []wire.WhatsAppMessage
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			from := parties[rng.Intn(len(parties))]
			to := parties[rng.Intn(len(parties))]
			msgs = append(msgs, msg(fmt.Sprintf("m%02d", i), from, to, "text", rng.Intn(10)))
		}

		want := map[string]bool{}
		for _, m := range msgs {
			if cp, ok := Counterpart(m, self); ok {
				want[cp] = true
			}
		}
		got := map[string]bool{}
		contacts := Contacts(msgs, self)
		for _, c := range contacts {
			require.False(t, got[c.PhoneNumber], "duplicate contact %s", c.PhoneNumber)
			require.NotEqual(t, self, c.PhoneNumber)
			got[c.PhoneNumber] = true
		}
		require.Equal(t, want, got)
		require.True(t, sort.SliceIsSorted(contacts, func(i, j int) bool {
			return contacts[i].Timestamp.After(contacts[j].Timestamp)
		}))

		for cp := range want {
			thread := Thread(msgs, cp)
			for i, m := range thread {
				require.True(t, m.Sender == cp || m.Recipient == cp)
				if i > 0 {
					require.False(t, m.Timestamp.Before(thread[i-1].Timestamp))
				}
			}
		}
	}
}

func TestFilter(t *testing.T) {
	contacts := []Contact{
		{PhoneNumber: "919800000001", Preview: "Policy renewal"},
		{PhoneNumber: "919800000002", Preview: "Claim status"},
	}
	require.Len(t, Filter(contacts, ""), 2)
	require.Equal(t, "919800000002", Filter(contacts, "CLAIM")[0].PhoneNumber)
	require.Len(t, Filter(contacts, "0001"), 1)
	require.Empty(t, Filter(contacts, "motor"))
}

func TestComputeStats(t *testing.T) {
	msgs := []wire.WhatsAppMessage{
		msg("1", self, "B", "", 1),
		msg("2", "B", self, "", 2),
		msg("3", "C", self, "", 3),
	}
	require.Equal(t, Stats{Total: 3, Sent: 1, Received: 2, UniqueContacts: 2}, ComputeStats(msgs, self))
}

func TestDayLabel(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, ist)

	require.Equal(t, "Today", DayLabel(now.Add(-9*time.Hour), now))
	require.Equal(t, "Yesterday", DayLabel(now.Add(-11*time.Hour), now))
	require.Equal(t, "16 Oct 2026", DayLabel(now.AddDate(0, 0, -3), now))
}
