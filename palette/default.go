package palette

// Default is the Wplace site palette.
var Default = []Entry{
	{ID: IntID(0), Premium: false, Name: "Transparent", RGB: Color{0, 0, 0}},
	{ID: IntID(1), Premium: false, Name: "Black", RGB: Color{0, 0, 0}},
	{ID: IntID(2), Premium: false, Name: "Dark Gray", RGB: Color{60, 60, 60}},
	{ID: IntID(3), Premium: false, Name: "Gray", RGB: Color{120, 120, 120}},
	{ID: IntID(4), Premium: false, Name: "Light Gray", RGB: Color{210, 210, 210}},
	{ID: IntID(5), Premium: false, Name: "White", RGB: Color{255, 255, 255}},
	{ID: IntID(6), Premium: false, Name: "Deep Red", RGB: Color{96, 0, 24}},
	{ID: IntID(7), Premium: false, Name: "Red", RGB: Color{237, 28, 36}},
	{ID: IntID(8), Premium: false, Name: "Orange", RGB: Color{255, 127, 39}},
	{ID: IntID(9), Premium: false, Name: "Gold", RGB: Color{246, 170, 9}},
	{ID: IntID(10), Premium: false, Name: "Yellow", RGB: Color{249, 221, 59}},
	{ID: IntID(11), Premium: false, Name: "Light Yellow", RGB: Color{255, 250, 188}},
	{ID: IntID(12), Premium: false, Name: "Dark Green", RGB: Color{14, 185, 104}},
	{ID: IntID(13), Premium: false, Name: "Green", RGB: Color{19, 230, 123}},
	{ID: IntID(14), Premium: false, Name: "Light Green", RGB: Color{135, 255, 94}},
	{ID: IntID(15), Premium: false, Name: "Dark Teal", RGB: Color{12, 129, 110}},
	{ID: IntID(16), Premium: false, Name: "Teal", RGB: Color{16, 174, 166}},
	{ID: IntID(17), Premium: false, Name: "Light Teal", RGB: Color{19, 225, 190}},
	{ID: IntID(18), Premium: false, Name: "Dark Blue", RGB: Color{40, 80, 158}},
	{ID: IntID(19), Premium: false, Name: "Blue", RGB: Color{64, 147, 228}},
	{ID: IntID(20), Premium: false, Name: "Cyan", RGB: Color{96, 247, 242}},
	{ID: IntID(21), Premium: false, Name: "Indigo", RGB: Color{107, 80, 246}},
	{ID: IntID(22), Premium: false, Name: "Light Indigo", RGB: Color{153, 177, 251}},
	{ID: IntID(23), Premium: false, Name: "Dark Purple", RGB: Color{120, 12, 153}},
	{ID: IntID(24), Premium: false, Name: "Purple", RGB: Color{170, 56, 185}},
	{ID: IntID(25), Premium: false, Name: "Light Purple", RGB: Color{224, 159, 249}},
	{ID: IntID(26), Premium: false, Name: "Dark Pink", RGB: Color{203, 0, 122}},
	{ID: IntID(27), Premium: false, Name: "Pink", RGB: Color{236, 31, 128}},
	{ID: IntID(28), Premium: false, Name: "Light Pink", RGB: Color{243, 141, 169}},
	{ID: IntID(29), Premium: false, Name: "Dark Brown", RGB: Color{104, 70, 52}},
	{ID: IntID(30), Premium: false, Name: "Brown", RGB: Color{149, 104, 42}},
	{ID: IntID(31), Premium: false, Name: "Beige", RGB: Color{248, 178, 119}},
	{ID: IntID(32), Premium: true, Name: "Medium Gray", RGB: Color{170, 170, 170}},
	{ID: IntID(33), Premium: true, Name: "Dark Red", RGB: Color{165, 14, 30}},
	{ID: IntID(34), Premium: true, Name: "Light Red", RGB: Color{250, 128, 114}},
	{ID: IntID(35), Premium: true, Name: "Dark Orange", RGB: Color{228, 92, 26}},
	{ID: IntID(36), Premium: true, Name: "Light Tan", RGB: Color{214, 181, 148}},
	{ID: IntID(37), Premium: true, Name: "Dark Goldenrod", RGB: Color{156, 132, 49}},
	{ID: IntID(38), Premium: true, Name: "Goldenrod", RGB: Color{197, 173, 49}},
	{ID: IntID(39), Premium: true, Name: "Light Goldenrod", RGB: Color{232, 212, 95}},
	{ID: IntID(40), Premium: true, Name: "Dark Olive", RGB: Color{74, 107, 58}},
	{ID: IntID(41), Premium: true, Name: "Olive", RGB: Color{90, 148, 74}},
	{ID: IntID(42), Premium: true, Name: "Light Olive", RGB: Color{132, 197, 115}},
	{ID: IntID(43), Premium: true, Name: "Dark Cyan", RGB: Color{15, 121, 159}},
	{ID: IntID(44), Premium: true, Name: "Light Cyan", RGB: Color{187, 250, 242}},
	{ID: IntID(45), Premium: true, Name: "Light Blue", RGB: Color{125, 199, 255}},
	{ID: IntID(46), Premium: true, Name: "Dark Indigo", RGB: Color{77, 49, 184}},
	{ID: IntID(47), Premium: true, Name: "Dark Slate Blue", RGB: Color{74, 66, 132}},
	{ID: IntID(48), Premium: true, Name: "Slate Blue", RGB: Color{122, 113, 196}},
	{ID: IntID(49), Premium: true, Name: "Light Slate Blue", RGB: Color{181, 174, 241}},
	{ID: IntID(50), Premium: true, Name: "Light Brown", RGB: Color{219, 164, 99}},
	{ID: IntID(51), Premium: true, Name: "Dark Beige", RGB: Color{209, 128, 81}},
	{ID: IntID(52), Premium: true, Name: "Light Beige", RGB: Color{255, 197, 165}},
	{ID: IntID(53), Premium: true, Name: "Dark Peach", RGB: Color{155, 82, 73}},
	{ID: IntID(54), Premium: true, Name: "Peach", RGB: Color{209, 128, 120}},
	{ID: IntID(55), Premium: true, Name: "Light Peach", RGB: Color{250, 182, 164}},
	{ID: IntID(56), Premium: true, Name: "Dark Tan", RGB: Color{123, 99, 82}},
	{ID: IntID(57), Premium: true, Name: "Tan", RGB: Color{156, 132, 107}},
	{ID: IntID(58), Premium: true, Name: "Dark Slate", RGB: Color{51, 57, 65}},
	{ID: IntID(59), Premium: true, Name: "Slate", RGB: Color{109, 117, 141}},
	{ID: IntID(60), Premium: true, Name: "Light Slate", RGB: Color{179, 185, 209}},
	{ID: IntID(61), Premium: true, Name: "Dark Stone", RGB: Color{109, 100, 63}},
	{ID: IntID(62), Premium: true, Name: "Stone", RGB: Color{148, 140, 107}},
	{ID: IntID(63), Premium: true, Name: "Light Stone", RGB: Color{205, 197, 158}},
}
