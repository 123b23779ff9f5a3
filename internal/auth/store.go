// Package auth はログイン認証機能を提供します。
package auth

// Credential はログイン可能なアカウント1件を表します。
// パスワードは平文で保持するチュートリアル用の資格情報であり、
// JSON には決して含めません。
type Credential struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	DisplayName string `json:"displayName"`
}

// Store は読み取り専用の資格情報リポジトリです。
// 実データストアへ差し替えられるよう、ハンドラーはこの抽象にのみ依存します。
type Store interface {
	// Lookup は識別子（メールアドレスまたはユーザー名）でアカウントを引きます。
	Lookup(identifier string) (Credential, bool)
}

// MemoryStore はプロセス起動時に一度だけ構築される固定テーブルです。
// メールアドレスとユーザー名の両方を同じインデックスに登録するため、
// どちらの別名でも単一の経路で O(1) に引けます。
type MemoryStore struct {
	byIdentifier map[string]Credential
}

// NewMemoryStore は資格情報のスライスから MemoryStore を構築します。
func NewMemoryStore(creds ...Credential) *MemoryStore {
	index := make(map[string]Credential, len(creds)*2)
	for _, c := range creds {
		if c.Email != "" {
			index[c.Email] = c
		}
		if c.Username != "" {
			index[c.Username] = c
		}
	}
	return &MemoryStore{byIdentifier: index}
}

// Lookup は識別子でアカウントを引きます。
func (s *MemoryStore) Lookup(identifier string) (Credential, bool) {
	c, ok := s.byIdentifier[identifier]
	return c, ok
}

// DemoStore はデモ用の固定アカウントを収めた MemoryStore を返します。
func DemoStore() *MemoryStore {
	return NewMemoryStore(
		Credential{
			Email:       "demo@example.com",
			Username:    "demo",
			Password:    "password123",
			DisplayName: "デモユーザー",
		},
		Credential{
			Email:       "admin@example.com",
			Username:    "admin",
			Password:    "admin123",
			DisplayName: "管理者",
		},
	)
}
