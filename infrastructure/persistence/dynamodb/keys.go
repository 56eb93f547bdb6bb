package dynamodb

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrPK     = "pk"
	attrSK     = "sk"
	attrGSI1PK = "gsi1pk"
	attrGSI1SK = "gsi1sk"

	prefixAlbum   = "ALBUM#"
	prefixProject = "PROJECT#"
	prefixFile    = "FILE#"
	prefixUser    = "USER#"

	albumSK = "ALBUM"
)

func AlbumPK(albumID string) string       { return prefixAlbum + albumID }
func AlbumGSI1SK(createdAt string) string { return prefixAlbum + createdAt }
func UserGSI1PK(sub string) string        { return prefixUser + sub }
func ProjectSK(projectID string) string   { return prefixProject + projectID }
func ProjectPK(projectID string) string   { return prefixProject + projectID }

// FileSK sorts files by creation time, then id
func FileSK(createdAt, fileID string) string {
	return prefixFile + createdAt + "#" + fileID
}

func primaryKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: pk},
		attrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

// stringAttr reads a string attribute, "" when absent or of another type
func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func trimPrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

func cutPrefix(s, prefix string) (string, bool) {
	return strings.CutPrefix(s, prefix)
}
