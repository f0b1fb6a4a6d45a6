package i18n

import "testing"

func TestFormat(t *testing.T) {
	cat := GetCatalog(BaseLocale)

	tests := []struct {
		name     string
		code     Code
		metadata map[string]string
		want     string
	}{
		{
			name:     "template filled from metadata",
			code:     CodeCardNotInHand,
			metadata: map[string]string{"Card": "FARM"},
			want:     "FARM is not in your hand",
		},
		{
			name: "missing metadata renders empty",
			code: CodeCardNotInHand,
			want: " is not in your hand",
		},
		{
			name: "plain message ignores metadata",
			code: CodeInputWrongPlayer,
			metadata: map[string]string{
				"PlayerID": "abc",
			},
			want: "It is not this player's turn",
		},
		{
			name: "unknown code falls back to the code",
			code: "NO_SUCH_CODE",
			want: "NO_SUCH_CODE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cat.Format(tt.code, tt.metadata); got != tt.want {
				t.Fatalf("Format(%s) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCatalogLocaleMatching(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"en-US", "en-US"},
		{"en", "en-US"},
		{"en-GB", "en-US"},
		{"", "en-US"},
		{"not a locale", "en-US"},
	}
	for _, tt := range tests {
		if got := GetCatalog(tt.requested).Locale(); got != tt.want {
			t.Errorf("GetCatalog(%q).Locale() = %q, want %q", tt.requested, got, tt.want)
		}
	}
}

func TestRegisterCatalog(t *testing.T) {
	messages := map[Code]string{
		CodeGameOver: "O jogo terminou para este jogador",
	}
	RegisterCatalog("pt-BR", NewCatalog("pt-BR", messages))

	cat := GetCatalog("pt")
	if cat.Locale() != "pt-BR" {
		t.Fatalf("expected the registered catalog, got %s", cat.Locale())
	}
	if got := cat.Format(CodeGameOver, nil); got != messages[CodeGameOver] {
		t.Fatalf("Format(GAME_OVER) = %q", got)
	}

	// The catalog holds its own copy of the messages.
	messages[CodeGameOver] = "changed"
	if got := cat.Format(CodeGameOver, nil); got == "changed" {
		t.Fatal("the catalog should not share the caller's map")
	}
}
