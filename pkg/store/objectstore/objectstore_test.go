package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGetter struct{ mock.Mock }

func (m *mockGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, *params.Bucket, *params.Key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		in      string
		want    URI
		wantErr bool
	}{
		{in: "s3://reports/2024/feb.pdf", want: URI{Bucket: "reports", Key: "2024/feb.pdf"}},
		{in: "s3://reports/feb.pdf", want: URI{Bucket: "reports", Key: "feb.pdf"}},
		{in: "s3://reports", wantErr: true},
		{in: "s3://reports/", wantErr: true},
		{in: "s3:///feb.pdf", wantErr: true},
		{in: "/tmp/feb.pdf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseURI(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestIsURI(t *testing.T) {
	assert.True(t, IsURI("s3://bucket/key"))
	assert.False(t, IsURI("report.pdf"))
}

func TestFetcher_Fetch(t *testing.T) {
	getter := new(mockGetter)
	getter.On("GetObject", mock.Anything, "reports", "feb.pdf").
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("%PDF-1.4")))}, nil)

	data, err := NewFetcher(getter).Fetch(context.Background(), "s3://reports/feb.pdf")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	getter.AssertExpectations(t)
}

func TestFetcher_FetchError(t *testing.T) {
	getter := new(mockGetter)
	getter.On("GetObject", mock.Anything, "reports", "gone.pdf").
		Return(nil, errors.New("NoSuchKey"))

	_, err := NewFetcher(getter).Fetch(context.Background(), "s3://reports/gone.pdf")

	assert.ErrorContains(t, err, "failed to get s3://reports/gone.pdf: NoSuchKey")
}

func TestFetcher_InvalidURI(t *testing.T) {
	getter := new(mockGetter)

	_, err := NewFetcher(getter).Fetch(context.Background(), "feb.pdf")

	assert.Error(t, err)
	getter.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
}
