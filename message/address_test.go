package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zostay/go-addr/pkg/addr"
)

func TestParseAddressList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseAddressList(""))
	assert.Nil(t, ParseAddressList("  "))

	al := ParseAddressList("Alice <alice@example.com>, bob@example.com")
	require.Len(t, al, 2)
	assert.Equal(t, "alice@example.com", al[0].Address())
	assert.Equal(t, "bob@example.com", al[1].Address())

	al = ParseAddressList("team: Carol <carol@example.com>, Dave <dave@example.com>;")
	require.Len(t, al, 1)
	g, isGroup := al[0].(*addr.Group)
	require.True(t, isGroup, "group is kept")
	assert.Equal(t, "team", g.DisplayName())
	assert.Len(t, g.MailboxList(), 2)
}

func TestParseAddressList_GroupWithBareAddress(t *testing.T) {
	t.Parallel()

	var al addr.AddressList
	require.NotPanics(t, func() {
		al = ParseAddressList("team: x@y.com, X <z@w.com>;")
	})
	require.Len(t, al, 2)

	spec, isAddrSpec := al[0].(*addr.AddrSpec)
	require.True(t, isAddrSpec, "bare member is an addr-spec")
	assert.Equal(t, "x@y.com", spec.Address())

	mb, isMailbox := al[1].(*addr.Mailbox)
	require.True(t, isMailbox, "named member is a mailbox")
	assert.Equal(t, "X", mb.DisplayName())
	assert.Equal(t, "z@w.com", mb.Address())
}

func TestMailboxName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		original string
		parsed   string
		name     string
		named    bool
	}{
		{"Beta Person <beta@example.com>", "BetaPerson", "Beta Person", true},
		{`"Smith, John" (work) <j@example.com>`, "Smith, John", "Smith, John", true},
		{`"Ann \"A\" Lee"  <a@example.com>`, `Ann "A" Lee`, `Ann "A" Lee`, true},
		{"Long\r\n   Name <l@example.com>", "LongName", "Long Name", true},
		{`"" <a@example.com>`, "", "", true},
		{"(nobody) <a@example.com>", "", "", false},
		{"<a@example.com>", "", "", false},
		{"", "Set Directly", "Set Directly", true},
		{"", "", "", false},
	}

	for _, test := range tests {
		spec := addr.NewAddrSpecParsed("a", "example.com", "a@example.com")
		mb, err := addr.NewMailboxParsed(test.parsed, spec, "", test.original)
		require.NoError(t, err)

		name, named := MailboxName(mb)
		assert.Equal(t, test.name, name, "name of %q", test.original)
		assert.Equal(t, test.named, named, "named %q", test.original)
	}
}

func TestUngroup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " a@b.com, c@d.com,", ungroup("team: a@b.com, c@d.com;"))
	assert.Equal(t, "x@y.com, a@b.com,", ungroup("x@y.com, team: a@b.com;"))
	assert.Equal(t, `"a: b" <c@d.com>`, ungroup(`"a: b" <c@d.com>`))
	assert.Equal(t, "a@b.com (a: b)", ungroup("a@b.com (a: b)"))
	assert.Equal(t, "", ungroup("empty:"))
}

func TestParseLenientAddressList(t *testing.T) {
	t.Parallel()

	al := parseLenientAddressList(`Steve (the boss) <steve@example.com>, "broken thing" <broken>, ,`)
	require.Len(t, al, 2)

	mb, isMailbox := al[0].(*addr.Mailbox)
	require.True(t, isMailbox, "mailbox")
	assert.Equal(t, "Steve", mb.DisplayName())
	assert.Equal(t, "steve@example.com", mb.Address())

	mb, isMailbox = al[1].(*addr.Mailbox)
	require.True(t, isMailbox, "mailbox")
	assert.Equal(t, "broken thing", mb.DisplayName())
}

func TestExtractComments(t *testing.T) {
	t.Parallel()

	clean, comment := extractComments("a (b (c)) d)")
	assert.Equal(t, "a  d)", clean)
	assert.Equal(t, "b (c)", comment)
}
