package message_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-index/message"
)

const mixedMessage = `From: Alice <alice@example.com>
To: Bob <bob@example.com>
Subject: =?utf-8?q?Caf=C3=A9_plans?=
Message-Id: <abc123@example.com>
Date: Mon, 02 Jan 2006 15:04:05 -0700
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: text/plain; charset=utf-8

Hello Bob.
--outer
Content-Type: application/pdf; name="invoice.pdf"
Content-Disposition: attachment; filename="invoice.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjQK
--outer
Content-Type: message/rfc822

From: Carol <carol@example.com>
Subject: inner

Inner body.
--outer--
`

func TestParse_Mixed(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(mixedMessage))
	require.NoError(t, err)
	assert.Empty(t, m.Warnings)

	mp, isMultipart := m.Root.(*message.Multipart)
	require.True(t, isMultipart, "root is multipart")
	assert.Equal(t, "mixed", mp.Subtype)
	require.Len(t, mp.Parts, 3)

	text, isLeaf := mp.Parts[0].(*message.Leaf)
	require.True(t, isLeaf, "first part is a leaf")
	assert.Equal(t, "text/plain", text.MediaType)
	assert.Equal(t, "", text.Disposition)
	assert.False(t, text.IsAttachment())
	assert.Equal(t, "Hello Bob.", string(text.Content))

	pdf, isLeaf := mp.Parts[1].(*message.Leaf)
	require.True(t, isLeaf, "second part is a leaf")
	assert.Equal(t, "application/pdf", pdf.MediaType)
	assert.True(t, pdf.IsAttachment())
	assert.Equal(t, "invoice.pdf", pdf.Filename)
	assert.Equal(t, "%PDF-1.4\n", string(pdf.Content))

	inner, isMessage := mp.Parts[2].(*message.MessagePart)
	require.True(t, isMessage, "third part is a message")
	require.NotNil(t, inner.Message)
	subject, ok := inner.Message.Subject()
	assert.True(t, ok)
	assert.Equal(t, "inner", subject)

	body, isLeaf := inner.Message.Root.(*message.Leaf)
	require.True(t, isLeaf, "inner root is a leaf")
	assert.Equal(t, "text/plain", body.MediaType)
	assert.Equal(t, "Inner body.", string(body.Content))
}

func TestParse_Accessors(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(mixedMessage))
	require.NoError(t, err)

	subject, ok := m.Subject()
	assert.True(t, ok)
	assert.Equal(t, "Café plans", subject)

	assert.Equal(t, "abc123@example.com", m.MessageID())

	date, err := m.Date()
	require.NoError(t, err)
	assert.Equal(t, int64(1136239445), date.Unix())

	from := m.Sender()
	require.Len(t, from, 1)
	assert.Equal(t, "alice@example.com", from[0].Address())

	_, ok = m.HeaderText(message.ListID)
	assert.False(t, ok)

	mime, ok := m.HeaderText("Mime-Version")
	assert.True(t, ok)
	assert.Equal(t, "1.0", mime)
}

func TestParse_MissingFields(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader("X-Nothing: here\n\nJust a body.\n"))
	require.NoError(t, err)

	_, ok := m.Subject()
	assert.False(t, ok)
	assert.Nil(t, m.Sender())
	assert.Nil(t, m.AllRecipients())
	assert.Equal(t, "", m.MessageID())

	_, err = m.Date()
	assert.ErrorIs(t, err, message.ErrNoSuchField)

	leaf, isLeaf := m.Root.(*message.Leaf)
	require.True(t, isLeaf, "root is a leaf")
	assert.Equal(t, "text/plain", leaf.MediaType)
	assert.Equal(t, "Just a body.\n", string(leaf.Content))
}

func TestParse_AllRecipients(t *testing.T) {
	t.Parallel()

	const msg = `To: a@example.com, b@example.com
Cc: c@example.com
Bcc: d@example.com

Hi.
`

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)

	rcpts := m.AllRecipients()
	require.Len(t, rcpts, 4)
	for i, want := range []string{
		"a@example.com",
		"b@example.com",
		"c@example.com",
		"d@example.com",
	} {
		assert.Equal(t, want, rcpts[i].Address())
	}
}

const signedMessage = `From: signer@example.com
Content-Type: multipart/signed; boundary="sig"; protocol="application/pgp-signature"

--sig
Content-Type: text/plain

Signed words.
--sig
Content-Type: application/pgp-signature

-----BEGIN PGP SIGNATURE-----
AAAA
-----END PGP SIGNATURE-----
--sig--
`

func TestParse_Signed(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(signedMessage))
	require.NoError(t, err)

	mp, isMultipart := m.Root.(*message.Multipart)
	require.True(t, isMultipart, "root is multipart")
	assert.Equal(t, "signed", mp.Subtype)
	require.Len(t, mp.Parts, 2)

	sig, isLeaf := mp.Parts[1].(*message.Leaf)
	require.True(t, isLeaf, "signature is a leaf")
	assert.Equal(t, "application/pgp-signature", sig.MediaType)
}

func TestParse_Digest(t *testing.T) {
	t.Parallel()

	const msg = `Content-Type: multipart/digest; boundary="d"

--d

Subject: first

One.
--d

Subject: second

Two.
--d--
`

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)

	mp, isMultipart := m.Root.(*message.Multipart)
	require.True(t, isMultipart, "root is multipart")
	require.Len(t, mp.Parts, 2)

	for i, want := range []string{"first", "second"} {
		inner, isMessage := mp.Parts[i].(*message.MessagePart)
		require.True(t, isMessage, "digest part %d is a message", i)
		require.NotNil(t, inner.Message)
		subject, _ := inner.Message.Subject()
		assert.Equal(t, want, subject)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(mixedMessage), message.WithMaxDepth(0))
	require.NoError(t, err)

	leaf, isLeaf := m.Root.(*message.Leaf)
	require.True(t, isLeaf, "root kept whole")
	assert.Equal(t, "multipart/mixed", leaf.MediaType)
	assert.True(t, leaf.IsContainer())
	assert.Contains(t, string(leaf.Content), "--outer")
	require.Len(t, m.Warnings, 1)
	assert.ErrorIs(t, m.Warnings[0], message.ErrMaxDepth)

	m, err = message.Parse(strings.NewReader(mixedMessage), message.WithMaxDepth(1))
	require.NoError(t, err)

	mp, isMultipart := m.Root.(*message.Multipart)
	require.True(t, isMultipart, "root is multipart")
	require.Len(t, mp.Parts, 3)
	leaf, isLeaf = mp.Parts[2].(*message.Leaf)
	require.True(t, isLeaf, "embedded message kept whole")
	assert.True(t, leaf.IsContainer())

	text, isLeaf := mp.Parts[0].(*message.Leaf)
	require.True(t, isLeaf, "text part")
	assert.False(t, text.IsContainer())

	m, err = message.Parse(strings.NewReader(mixedMessage), message.WithUnlimitedRecursion())
	require.NoError(t, err)
	assert.Empty(t, m.Warnings)
}

func TestParse_Charset(t *testing.T) {
	t.Parallel()

	message.Init()

	const msg = "Content-Type: text/plain; charset=iso-8859-1\n" +
		"Content-Transfer-Encoding: quoted-printable\n" +
		"\n" +
		"Caf=E9 cr=E8me\n"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)
	assert.Empty(t, m.Warnings)

	leaf, isLeaf := m.Root.(*message.Leaf)
	require.True(t, isLeaf, "root is a leaf")
	assert.Equal(t, "Café crème\n", string(leaf.Content))
}

func TestParse_UnknownCharset(t *testing.T) {
	t.Parallel()

	message.Init()

	const msg = "Content-Type: text/plain; charset=x-made-up\n" +
		"\n" +
		"plain enough\n"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)
	require.Len(t, m.Warnings, 1)

	leaf, isLeaf := m.Root.(*message.Leaf)
	require.True(t, isLeaf, "root is a leaf")
	assert.Equal(t, "plain enough\n", string(leaf.Content))
}

func TestParse_NotAMessage(t *testing.T) {
	t.Parallel()

	_, err := message.Parse(strings.NewReader("this is not an email\n"))
	assert.ErrorIs(t, err, message.ErrParse)
}

func TestParse_FilenameFromContentType(t *testing.T) {
	t.Parallel()

	const msg = `Content-Type: multipart/mixed; boundary="b"

--b
Content-Type: image/png; name="=?utf-8?q?r=C3=A9sum=C3=A9.png?="
Content-Disposition: ATTACHMENT

png
--b--
`

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)

	mp, isMultipart := m.Root.(*message.Multipart)
	require.True(t, isMultipart, "root is multipart")
	require.Len(t, mp.Parts, 1)

	leaf, isLeaf := mp.Parts[0].(*message.Leaf)
	require.True(t, isLeaf, "part is a leaf")
	assert.Equal(t, message.DispositionAttachment, leaf.Disposition)
	assert.Equal(t, "résumé.png", leaf.Filename)
}

func TestDecodePhrase(t *testing.T) {
	t.Parallel()

	message.Init()

	assert.Equal(t, "plain", message.DecodePhrase("plain"))
	assert.Equal(t, "Café", message.DecodePhrase("=?utf-8?q?Caf=C3=A9?="))
	assert.Equal(t, "Café", message.DecodePhrase("=?iso-8859-1?q?Caf=E9?="))
	assert.Equal(t, "=?bogus", message.DecodePhrase("=?bogus"))
}
