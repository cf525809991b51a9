package overlay

import (
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

// SpawnRisk категория риска появления враждебного моба
type SpawnRisk uint8

const (
	// RiskNever достаточно света от блоков, моб не появится
	RiskNever SpawnRisk = iota
	// RiskNightOnly днём светло от неба, опасно только ночью
	RiskNightOnly
	// RiskAlways темно всегда
	RiskAlways
)

func (r SpawnRisk) String() string {
	switch r {
	case RiskNever:
		return "never"
	case RiskNightOnly:
		return "night_only"
	case RiskAlways:
		return "always"
	default:
		return "unknown"
	}
}

// Порог: свет строго выше этого значения подавляет спавн
const spawnLightThreshold = 7

// headroomHeight сколько блоков над поверхностью нужно мобу
const headroomHeight = 2

// Classify определяет категорию по свету в позиции, где окажется моб.
// Зависит только от света, но не от материала.
func Classify(blockLight, skyLight uint8) SpawnRisk {
	if blockLight > spawnLightThreshold {
		return RiskNever
	}
	if skyLight > spawnLightThreshold {
		return RiskNightOnly
	}
	return RiskAlways
}

// ClassifySample применяет Classify к снимку блока над поверхностью
func ClassifySample(above LightSample) SpawnRisk {
	return Classify(above.BlockLight, above.SkyLight)
}

// ValidSurface проверяет, может ли моб стоять на блоке pos:
// блок непроходим, ступень перевёрнута (или материал SpawnAlways для остальных форм),
// и над ним есть два свободных блока.
func ValidSurface(src BlockSource, pos vec.Vec3) bool {
	if src.Passable(pos) {
		return false
	}

	shape := src.Shape(pos)
	if shape.Kind == block.ShapeStair {
		// Ступени не проходят общий фильтр материалов
		if shape.Half != block.HalfTop {
			return false
		}
	} else if src.Light(pos).SpawnValue != block.SpawnAlways {
		return false
	}

	return HasHeadroom(src, pos)
}

// HasHeadroom проверяет два блока над поверхностью: воздух, проходимый
// или прозрачный материал не мешают, всё остальное перекрывает место
func HasHeadroom(src BlockSource, pos vec.Vec3) bool {
	for dy := 1; dy <= headroomHeight; dy++ {
		above := src.Light(pos.Up(dy))
		if above.Air || above.Passable {
			continue
		}
		if !above.Transparent() {
			return false
		}
	}
	return true
}
