package meter

// PositionDef is the static description of a meter position. Rules are referenced
// by name so that the registry can report undefined ones.
type PositionDef struct {
	Tafila  string
	Zihafat []string
	Ilal    []string
}

// Definition is the static description of a meter. The last position is the final
// one. Variants set BaseID and inherit rank and tier from their base meter.
type Definition struct {
	ID        ID
	Name      string
	Translit  string
	Rank      int
	BaseID    ID
	Positions []PositionDef
}

func pos(tafila string, zihafat ...string) PositionDef {
	return PositionDef{Tafila: tafila, Zihafat: zihafat}
}

func final(tafila string, zihafat []string, ilal ...string) PositionDef {
	return PositionDef{Tafila: tafila, Zihafat: zihafat, Ilal: ilal}
}

func rs(names ...string) []string { return names }

// Definitions returns the sixteen meters followed by the majzūʾ variants
func Definitions() []Definition {
	return []Definition{
		{ID: 1, Name: "الطويل", Translit: "tawil", Rank: 1, Positions: []PositionDef{
			pos("فعولن", "قبض", "خرم", "ثرم"),
			pos("مفاعيلن", "قبض", "كف"),
			pos("فعولن", "قبض"),
			final("مفاعيلن", rs("قبض"), "حذف"),
		}},
		{ID: 2, Name: "المديد", Translit: "madid", Rank: 12, Positions: []PositionDef{
			pos("فاعلاتن", "خبن", "كف"),
			pos("فاعلن", "خبن"),
			final("فاعلاتن", rs("خبن", "كف"), "حذف", "قصر"),
		}},
		{ID: 3, Name: "البسيط", Translit: "basit", Rank: 3, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي"),
			pos("فاعلن", "خبن"),
			pos("مستفعلن", "خبن", "طي"),
			final("فاعلن", rs("خبن")),
		}},
		{ID: 4, Name: "الوافر", Translit: "wafir", Rank: 4, Positions: []PositionDef{
			pos("مفاعلتن", "عصب", "عقل", "نقص"),
			pos("مفاعلتن", "عصب", "عقل", "نقص"),
			final("فعولن", nil),
		}},
		{ID: 5, Name: "الكامل", Translit: "kamil", Rank: 2, Positions: []PositionDef{
			pos("متفاعلن", "إضمار", "وقص", "خزل"),
			pos("متفاعلن", "إضمار", "وقص", "خزل"),
			final("متفاعلن", rs("إضمار"), "قطع"),
		}},
		{ID: 6, Name: "الهزج", Translit: "hazaj", Rank: 13, Positions: []PositionDef{
			pos("مفاعيلن", "قبض", "كف"),
			final("مفاعيلن", rs("قبض"), "حذف"),
		}},
		{ID: 7, Name: "الرجز", Translit: "rajaz", Rank: 6, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي", "خبل"),
			pos("مستفعلن", "خبن", "طي", "خبل"),
			final("مستفعلن", rs("خبن", "طي"), "قطع"),
		}},
		{ID: 8, Name: "الرمل", Translit: "ramal", Rank: 7, Positions: []PositionDef{
			pos("فاعلاتن", "خبن", "كف", "شكل"),
			pos("فاعلاتن", "خبن", "كف", "شكل"),
			final("فاعلاتن", rs("خبن", "كف"), "حذف", "قصر"),
		}},
		{ID: 9, Name: "السريع", Translit: "sari", Rank: 9, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي"),
			pos("مستفعلن", "خبن", "طي"),
			final("فاعلن", rs("خبن"), "قطع"),
		}},
		{ID: 10, Name: "المنسرح", Translit: "munsarih", Rank: 10, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي"),
			pos("مفعولات", "طي", "خبن"),
			final("مستفعلن", rs("طي", "خبن"), "قطع"),
		}},
		{ID: 11, Name: "الخفيف", Translit: "khafif", Rank: 5, Positions: []PositionDef{
			pos("فاعلاتن", "خبن", "كف"),
			pos("مستفع لن", "خبن"),
			final("فاعلاتن", rs("خبن"), "حذف"),
		}},
		{ID: 12, Name: "المضارع", Translit: "mudari", Rank: 16, Positions: []PositionDef{
			pos("مفاعيلن", "قبض", "كف"),
			final("فاع لاتن", nil),
		}},
		{ID: 13, Name: "المقتضب", Translit: "muqtadab", Rank: 15, Positions: []PositionDef{
			pos("مفعولات", "طي", "خبن"),
			final("مستفعلن", rs("طي")),
		}},
		{ID: 14, Name: "المجتث", Translit: "mujtathth", Rank: 14, Positions: []PositionDef{
			pos("مستفع لن", "خبن"),
			final("فاعلاتن", rs("خبن"), "حذف"),
		}},
		{ID: 15, Name: "المتقارب", Translit: "mutaqarib", Rank: 8, Positions: []PositionDef{
			pos("فعولن", "قبض"),
			pos("فعولن", "قبض"),
			pos("فعولن", "قبض"),
			final("فعولن", rs("قبض"), "حذف", "قصر"),
		}},
		{ID: 16, Name: "المتدارك", Translit: "mutadarik", Rank: 11, Positions: []PositionDef{
			pos("فاعلن", "خبن"),
			pos("فاعلن", "خبن"),
			pos("فاعلن", "خبن"),
			final("فاعلن", rs("خبن"), "قطع"),
		}},

		{ID: 17, Name: "الكامل المجزوء", Translit: "kamil-majzu", BaseID: 5, Positions: []PositionDef{
			pos("متفاعلن", "إضمار", "وقص", "خزل"),
			final("متفاعلن", rs("إضمار"), "قطع"),
		}},
		{ID: 18, Name: "الرجز المجزوء", Translit: "rajaz-majzu", BaseID: 7, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي", "خبل"),
			final("مستفعلن", rs("خبن", "طي"), "قطع"),
		}},
		{ID: 19, Name: "الرمل المجزوء", Translit: "ramal-majzu", BaseID: 8, Positions: []PositionDef{
			pos("فاعلاتن", "خبن", "كف"),
			final("فاعلاتن", rs("خبن", "كف"), "حذف", "قصر"),
		}},
		{ID: 20, Name: "البسيط المجزوء", Translit: "basit-majzu", BaseID: 3, Positions: []PositionDef{
			pos("مستفعلن", "خبن", "طي"),
			pos("فاعلن", "خبن"),
			final("مستفعلن", rs("خبن", "طي"), "قطع"),
		}},
		{ID: 21, Name: "الوافر المجزوء", Translit: "wafir-majzu", BaseID: 4, Positions: []PositionDef{
			pos("مفاعلتن", "عصب", "عقل", "نقص"),
			final("مفاعلتن", rs("عصب")),
		}},
		{ID: 22, Name: "الخفيف المجزوء", Translit: "khafif-majzu", BaseID: 11, Positions: []PositionDef{
			pos("فاعلاتن", "خبن", "كف"),
			final("مستفع لن", rs("خبن")),
		}},
		{ID: 23, Name: "المتقارب المجزوء", Translit: "mutaqarib-majzu", BaseID: 15, Positions: []PositionDef{
			pos("فعولن", "قبض"),
			pos("فعولن", "قبض"),
			final("فعولن", rs("قبض"), "حذف"),
		}},
	}
}
