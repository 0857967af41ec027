package color

// names maps color keywords to their RGB values. Keys are lowercase.
var names = map[string]RGB{
	"black":     {0, 0, 0},
	"white":     {255, 255, 255},
	"red":       {255, 0, 0},
	"green":     {0, 128, 0},
	"lime":      {0, 255, 0},
	"blue":      {0, 0, 255},
	"yellow":    {255, 255, 0},
	"cyan":      {0, 255, 255},
	"magenta":   {255, 0, 255},
	"orange":    {255, 165, 0},
	"purple":    {128, 0, 128},
	"violet":    {238, 130, 238},
	"pink":      {255, 192, 203},
	"gold":      {255, 215, 0},
	"teal":      {0, 128, 128},
	"navy":      {0, 0, 128},
	"maroon":    {128, 0, 0},
	"olive":     {128, 128, 0},
	"gray":      {128, 128, 128},
	"grey":      {128, 128, 128},
	"silver":    {192, 192, 192},
	"brown":     {165, 42, 42},
	"coral":     {255, 127, 80},
	"salmon":    {250, 128, 114},
	"indigo":    {75, 0, 130},
	"turquoise": {64, 224, 208},
	"warmwhite": {255, 244, 229},
	"candle":    {255, 147, 41},
}
