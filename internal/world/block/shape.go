package block

// ShapeKind вариант формы блока
type ShapeKind uint8

const (
	ShapeCube ShapeKind = iota
	ShapeStair
	ShapeSlab
	ShapeSnow
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeStair:
		return "stair"
	case ShapeSlab:
		return "slab"
	case ShapeSnow:
		return "snow"
	default:
		return "unknown"
	}
}

// Half половина блока, к которой прижата ступень
type Half uint8

const (
	HalfBottom Half = iota
	HalfTop
)

// SlabType положение плиты
type SlabType uint8

const (
	SlabBottom SlabType = iota
	SlabTop
	SlabDouble
)

// Facing направление ступени
type Facing uint8

const (
	FacingNorth Facing = iota
	FacingEast
	FacingSouth
	FacingWest
)

// Shape снимок формы блока. Значимы только поля, относящиеся к Kind.
type Shape struct {
	Kind      ShapeKind
	Half      Half     // ShapeStair
	Facing    Facing   // ShapeStair
	Slab      SlabType // ShapeSlab
	Layers    int      // ShapeSnow
	MaxLayers int      // ShapeSnow
}

// Cube возвращает форму полного блока
func Cube() Shape { return Shape{Kind: ShapeCube} }

// Stair возвращает форму ступени
func Stair(half Half, facing Facing) Shape {
	return Shape{Kind: ShapeStair, Half: half, Facing: facing}
}

// Slab возвращает форму плиты
func Slab(t SlabType) Shape { return Shape{Kind: ShapeSlab, Slab: t} }

// Snow возвращает форму снежного слоя
func Snow(layers, maxLayers int) Shape {
	return Shape{Kind: ShapeSnow, Layers: layers, MaxLayers: maxLayers}
}

// ParseHalf разбирает значение "half" из метаданных
func ParseHalf(s string) Half {
	if s == "top" {
		return HalfTop
	}
	return HalfBottom
}

// ParseSlabType разбирает значение "type" из метаданных
func ParseSlabType(s string) SlabType {
	switch s {
	case "top":
		return SlabTop
	case "double":
		return SlabDouble
	default:
		return SlabBottom
	}
}

// ParseFacing разбирает значение "facing" из метаданных
func ParseFacing(s string) Facing {
	switch s {
	case "east":
		return FacingEast
	case "south":
		return FacingSouth
	case "west":
		return FacingWest
	default:
		return FacingNorth
	}
}

func (f Facing) String() string {
	return [...]string{"north", "east", "south", "west"}[f&3]
}
