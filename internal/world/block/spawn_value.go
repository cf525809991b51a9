package block

// SpawnValue описывает, может ли моб появиться на материале.
// Используется только проверкой поверхности; категория риска от материала не зависит.
type SpawnValue uint8

const (
	// SpawnNever на материале никто не появляется (вода, воздух)
	SpawnNever SpawnValue = iota
	// SpawnTransparent материал не мешает мобу стоять внутри (стекло, листва, факел)
	SpawnTransparent
	// SpawnAlways полноценная поверхность для спавна
	SpawnAlways
)

func (v SpawnValue) String() string {
	switch v {
	case SpawnNever:
		return "never"
	case SpawnTransparent:
		return "transparent"
	case SpawnAlways:
		return "always"
	default:
		return "unknown"
	}
}
