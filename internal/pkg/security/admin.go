package security

import "strings"

// AdminList 管理员邮箱白名单
type AdminList struct {
	emails map[string]struct{}
}

func NewAdminList(emails []string) *AdminList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = normalizeEmail(e)
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return &AdminList{emails: set}
}

// IsAdmin 邮箱是否在白名单内，大小写不敏感
func (a *AdminList) IsAdmin(email string) bool {
	if a == nil {
		return false
	}
	_, ok := a.emails[normalizeEmail(email)]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
