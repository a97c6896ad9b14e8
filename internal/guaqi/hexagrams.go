package guaqi

import (
	"github.com/wonny/dayan/internal/contracts"
)

// hexagramSpec is one row of the static table
type hexagramSpec struct {
	key      string
	name     string
	kingWen  int
	lines    string // bottom to top, 1 = solid
	judgment string
}

// 六十四卦 (King Wen order)
var hexagramSpecs = []hexagramSpec{
	{"qian", "乾", 1, "111111", "元亨利贞。"},
	{"kun", "坤", 2, "000000", "元亨，利牝马之贞。君子有攸往，先迷后得主，利。西南得朋，东北丧朋。安贞吉。"},
	{"zhun", "屯", 3, "100010", "元亨利贞。勿用有攸往，利建侯。"},
	{"meng", "蒙", 4, "010001", "亨。匪我求童蒙，童蒙求我。初筮告，再三渎，渎则不告。利贞。"},
	{"xu", "需", 5, "111010", "有孚，光亨，贞吉。利涉大川。"},
	{"song", "讼", 6, "010111", "有孚，窒。惕中吉，终凶。利见大人，不利涉大川。"},
	{"shi", "师", 7, "010000", "贞，丈人吉，无咎。"},
	{"bi", "比", 8, "000010", "吉。原筮元永贞，无咎。不宁方来，后夫凶。"},
	{"xiaoxu", "小畜", 9, "111011", "亨。密云不雨，自我西郊。"},
	{"lv", "履", 10, "110111", "履虎尾，不咥人，亨。"},
	{"tai", "泰", 11, "111000", "小往大来，吉亨。"},
	{"pi", "否", 12, "000111", "否之匪人，不利君子贞，大往小来。"},
	{"tongren", "同人", 13, "101111", "同人于野，亨。利涉大川，利君子贞。"},
	{"dayou", "大有", 14, "111101", "元亨。"},
	{"qian2", "谦", 15, "001000", "亨，君子有终。"},
	{"yu", "豫", 16, "000100", "利建侯行师。"},
	{"sui", "随", 17, "100110", "元亨利贞，无咎。"},
	{"gu", "蛊", 18, "011001", "元亨，利涉大川。先甲三日，后甲三日。"},
	{"lin", "临", 19, "110000", "元亨利贞。至于八月有凶。"},
	{"guan", "观", 20, "000011", "盥而不荐，有孚颙若。"},
	{"shike", "噬嗑", 21, "100101", "亨。利用狱。"},
	{"bi4", "贲", 22, "101001", "亨。小利有攸往。"},
	{"bo", "剥", 23, "000001", "不利有攸往。"},
	{"fu", "复", 24, "100000", "亨。出入无疾，朋来无咎。反复其道，七日来复，利有攸往。"},
	{"wuwang", "无妄", 25, "100111", "元亨利贞。其匪正有眚，不利有攸往。"},
	{"daxu", "大畜", 26, "111001", "利贞，不家食吉，利涉大川。"},
	{"yi", "颐", 27, "100001", "贞吉。观颐，自求口实。"},
	{"daguo", "大过", 28, "011110", "栋桡，利有攸往，亨。"},
	{"kan", "坎", 29, "010010", "习坎，有孚，维心亨，行有尚。"},
	{"li", "离", 30, "101101", "利贞，亨。畜牝牛，吉。"},
	{"xian", "咸", 31, "001110", "亨，利贞，取女吉。"},
	{"heng", "恒", 32, "011100", "亨，无咎，利贞，利有攸往。"},
	{"dun", "遯", 33, "001111", "亨，小利贞。"},
	{"dazhuang", "大壮", 34, "111100", "利贞。"},
	{"jin", "晋", 35, "000101", "康侯用锡马蕃庶，昼日三接。"},
	{"mingyi", "明夷", 36, "101000", "利艰贞。"},
	{"jiaren", "家人", 37, "101011", "利女贞。"},
	{"kui", "睽", 38, "110101", "小事吉。"},
	{"jian3", "蹇", 39, "001010", "利西南，不利东北。利见大人，贞吉。"},
	{"jie3", "解", 40, "010100", "利西南。无所往，其来复吉。有攸往，夙吉。"},
	{"sun", "损", 41, "110001", "有孚，元吉，无咎，可贞，利有攸往。"},
	{"yi4", "益", 42, "100011", "利有攸往，利涉大川。"},
	{"guai", "夬", 43, "111110", "扬于王庭，孚号有厉。告自邑，不利即戎，利有攸往。"},
	{"gou", "姤", 44, "011111", "女壮，勿用取女。"},
	{"cui", "萃", 45, "000110", "亨。王假有庙，利见大人，亨，利贞。用大牲吉，利有攸往。"},
	{"sheng", "升", 46, "011000", "元亨，用见大人，勿恤，南征吉。"},
	{"kun4", "困", 47, "010110", "亨，贞，大人吉，无咎。有言不信。"},
	{"jing", "井", 48, "011010", "改邑不改井，无丧无得，往来井井。"},
	{"ge", "革", 49, "101110", "巳日乃孚，元亨利贞，悔亡。"},
	{"ding", "鼎", 50, "011101", "元吉，亨。"},
	{"zhen", "震", 51, "100100", "亨。震来虩虩，笑言哑哑。震惊百里，不丧匕鬯。"},
	{"gen", "艮", 52, "001001", "艮其背，不获其身，行其庭，不见其人，无咎。"},
	{"jian", "渐", 53, "001011", "女归吉，利贞。"},
	{"guimei", "归妹", 54, "110100", "征凶，无攸利。"},
	{"feng", "丰", 55, "101100", "亨，王假之，勿忧，宜日中。"},
	{"lv3", "旅", 56, "001101", "小亨，旅贞吉。"},
	{"xun", "巽", 57, "011011", "小亨，利有攸往，利见大人。"},
	{"dui", "兑", 58, "110110", "亨，利贞。"},
	{"huan", "涣", 59, "010011", "亨。王假有庙，利涉大川，利贞。"},
	{"jie", "节", 60, "110010", "亨。苦节不可贞。"},
	{"zhongfu", "中孚", 61, "110011", "豚鱼吉，利涉大川，利贞。"},
	{"xiaoguo", "小过", 62, "001100", "亨，利贞。可小事，不可大事。飞鸟遗之音，不宜上，宜下，大吉。"},
	{"jiji", "既济", 63, "101010", "亨小，利贞。初吉终乱。"},
	{"weiji", "未济", 64, "010101", "亨。小狐汔济，濡其尾，无攸利。"},
}

// trigram images keyed by their three lines, bottom to top
var trigramImages = map[string]struct{ name, image string }{
	"111": {"乾", "天"},
	"000": {"坤", "地"},
	"100": {"震", "雷"},
	"010": {"坎", "水"},
	"001": {"艮", "山"},
	"011": {"巽", "风"},
	"101": {"离", "火"},
	"110": {"兑", "泽"},
}

// hexagrams is the lookup table built once from hexagramSpecs
var hexagrams = buildHexagrams()

func buildHexagrams() map[string]contracts.Hexagram {
	out := make(map[string]contracts.Hexagram, len(hexagramSpecs))
	for _, s := range hexagramSpecs {
		out[s.key] = contracts.Hexagram{
			Key:         s.key,
			Name:        s.name,
			Symbol:      string(rune(0x4DC0 + s.kingWen - 1)),
			Lines:       s.lines,
			Nature:      nature(s.name, s.lines),
			Description: s.judgment,
			KingWen:     s.kingWen,
		}
	}
	return out
}

// nature renders the trigram composition, e.g. 风泽中孚 or 乾为天
func nature(name, lines string) string {
	lower := trigramImages[lines[:3]]
	upper := trigramImages[lines[3:]]
	if lower == upper {
		return upper.name + "为" + upper.image
	}
	return upper.image + lower.image + name
}

// Lookup returns the hexagram for key
func Lookup(key string) (contracts.Hexagram, bool) {
	h, ok := hexagrams[key]
	return h, ok
}

// All returns the 64 hexagrams in King Wen order
func All() []contracts.Hexagram {
	out := make([]contracts.Hexagram, 0, len(hexagramSpecs))
	for _, s := range hexagramSpecs {
		out = append(out, hexagrams[s.key])
	}
	return out
}

// SolidLines counts the yang lines of a pattern
func SolidLines(lines string) int {
	n := 0
	for _, c := range lines {
		if c == '1' {
			n++
		}
	}
	return n
}
