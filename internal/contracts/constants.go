package contracts

// Dayan calendar constants
// ⭐ SSOT: 모든 엔진 패키지는 이 상수만 사용
const (
	// TongFa is the common denominator: fen per day
	TongFa int64 = 3040

	// ShuoShi is the synodic month in fen (29 1613/3040 days)
	ShuoShi int64 = 89773

	// CeShi is the tropical year in fen (365 743/3040 days)
	CeShi int64 = 1110343

	// QiCe is the length of one solar term in fen (CeShi / 24)
	QiCe int64 = 46264

	// GuaDuration is how long one hexagram is on duty (6 days 253 fen)
	GuaDuration int64 = 18493

	// YaoDuration is how long one line is on duty (1 day 42 fen)
	YaoDuration int64 = 3082

	// YongDuration is the residual void span after the six lines
	YongDuration = GuaDuration - 6*YaoDuration

	// DayanNumber is the 大衍之数
	DayanNumber = 50

	// CircleDu is the circumference of the mansion ring
	CircleDu = 365.25

	// GuaCount is the length of the daily hexagram rotation
	GuaCount = 60
)

// Math returns the constants card exposed in every report
func Math() DayanMath {
	return DayanMath{
		DayanNumber:          DayanNumber,
		TongFa:               TongFa,
		Derivation:           "19(章) × 5(五行) × 4(四象) × 8(八卦)",
		ShuoShi:              ShuoShi,
		SynodicMonthFraction: "29 + 1613/3040",
		CeShi:                CeShi,
		TropicalYearFraction: "365 + 743/3040",
		QiCe:                 QiCe,
		GuaDuration:          GuaDuration,
		YaoDuration:          YaoDuration,
		CircleDu:             CircleDu,
	}
}
