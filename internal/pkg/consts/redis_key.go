package consts

const (
	TokenRevokedKey = "auth:revoked:"
	MediaTempKey    = "media:temp"
)
