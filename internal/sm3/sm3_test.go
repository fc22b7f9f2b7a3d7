package sm3

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"
)

// Vectors from GB/T 32905-2016, appendix A.
var vectors = []struct {
	in   string
	want string
}{
	{"", "1ab21d8355cfa17f8e61194831e81a8f22bec8c728fefb747ed035eb5082aa2b"},
	{"a", "623476ac18f65a2909e43c7fec61b49c7e764a91a18ccb82f1917a29c86c5e88"},
	{"abc", "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"},
	{
		strings.Repeat("abcd", 16),
		"debe9ff92275b8a138604889c18e5a4d6fdb70e5387e5765293dcba39c0c5732",
	},
}

func TestSum(t *testing.T) {
	t.Parallel()

	for _, v := range vectors {
		sum := Sum([]byte(v.in))

		assert.Equal(t, "digest of "+label(v.in), v.want, hex.EncodeToString(sum[:]))
	}
}

func label(in string) string {
	if len(in) > 8 {
		return in[:8] + "..."
	}

	return in
}

func TestWriteChunked(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("gmcrypt"), 100)
	want := Sum(data)

	// Writing in odd-sized chunks must produce the same digest as a single
	// write.
	for _, chunk := range []int{1, 3, 63, 64, 65, 200} {
		h := New()

		for i := 0; i < len(data); i += chunk {
			end := i + chunk
			if end > len(data) {
				end = len(data)
			}

			_, _ = h.Write(data[i:end])
		}

		assert.Equal(t, "chunked digest", want[:], h.Sum(nil))
	}
}

func TestSumDoesNotConsumeState(t *testing.T) {
	t.Parallel()

	h := New()
	_, _ = h.Write([]byte("ab"))

	first := h.Sum(nil)
	second := h.Sum(nil)

	assert.Equal(t, "repeated Sum", first, second)

	// The hasher must still accept writes after a Sum and produce the digest
	// of the full input.
	_, _ = h.Write([]byte("c"))

	want := Sum([]byte("abc"))

	assert.Equal(t, "digest after Sum mid-stream", want[:], h.Sum(nil))
}

func TestBlockBoundaryPadding(t *testing.T) {
	t.Parallel()

	// 55, 56, and 64 byte inputs exercise all three padding branches. Feeding
	// the input a byte at a time forces the buffered path through the same
	// padding.
	for _, n := range []int{55, 56, 63, 64, 119, 120, 128} {
		data := bytes.Repeat([]byte{0xa5}, n)
		want := Sum(data)

		h := New()
		for _, c := range data {
			_, _ = h.Write([]byte{c})
		}

		assert.Equal(t, "padding", want[:], h.Sum(nil))
	}
}

func BenchmarkSum(b *testing.B) {
	data := make([]byte, 1024)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Sum(data)
	}
}
