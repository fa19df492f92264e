package graphql

import (
	"fmt"
	"io"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

// Upload is the custom scalar carrying an attached file stream.
// The multipart handler places domain.Upload values straight into the
// variables map, so unmarshalling only has to recognize them.
type Upload struct {
	domain.Upload
}

func (Upload) ImplementsGraphQLType(name string) bool {
	return name == "Upload"
}

func (u *Upload) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case domain.Upload:
		u.Upload = v
		return nil
	case *domain.Upload:
		u.Upload = *v
		return nil
	default:
		return fmt.Errorf("upload expects a multipart file, got %T", input)
	}
}

func newUploadValue(filename, contentType, encoding string, r io.Reader) domain.Upload {
	return domain.Upload{
		Filename:    filename,
		ContentType: contentType,
		Encoding:    encoding,
		Reader:      r,
	}
}
