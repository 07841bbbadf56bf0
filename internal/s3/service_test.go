package s3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/flexprice/propbill/internal/config"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects     map[string][]byte
	contentType map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.contentType[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &s3types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestService_UploadAndGet(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	svc := NewServiceWithClient(objects, &config.S3Config{Bucket: "billing", KeyPrefix: "invoices"})

	loc, err := svc.UploadDocument(ctx, NewDocxDocument("Invoice_March_2025_Main_St.docx", []byte("doc"), DocumentTypeInvoice))
	require.NoError(t, err)
	assert.Equal(t, "s3://billing/invoices/Invoice_March_2025_Main_St.docx", loc)
	assert.Equal(t, types.ContentTypeDocx, objects.contentType["billing/invoices/Invoice_March_2025_Main_St.docx"])

	exists, err := svc.Exists(ctx, "Invoice_March_2025_Main_St.docx", DocumentTypeInvoice)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := svc.GetDocument(ctx, "Invoice_March_2025_Main_St.docx", DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), data)
}

func TestService_TemplateKeysAreVerbatim(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	objects.objects["billing/templates/base.docx"] = []byte("tpl")
	svc := NewServiceWithClient(objects, &config.S3Config{Bucket: "billing", KeyPrefix: "invoices"})

	data, err := svc.GetDocument(ctx, "templates/base.docx", DocumentTypeTemplate)
	require.NoError(t, err)
	assert.Equal(t, []byte("tpl"), data)
}

func TestService_Missing(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceWithClient(newFakeObjects(), &config.S3Config{Bucket: "billing"})

	exists, err := svc.Exists(ctx, "nope.docx", DocumentTypeInvoice)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.GetDocument(ctx, "nope.docx", DocumentTypeTemplate)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	_, err = svc.GetDocument(ctx, "nope.docx", DocumentType("receipt"))
	require.Error(t, err)
	assert.False(t, ierr.IsNotFound(err))
}

func TestNewService_Disabled(t *testing.T) {
	svc, err := NewService(config.GetDefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, svc)
}
