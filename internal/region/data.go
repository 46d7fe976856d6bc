package region

// 文档注释：DKI Jakarta 静态声明数据（别名对与层级结构）
// 背景：名称以人类可读形式声明，构建时统一经过 Normalize；新增条目无需手工写规范键。
// 约束：同一变体在同一张表内不得映射到两个不同规范值；该约束由 cmd/alias-lint 与测试把关，
// 运行期查找不做校验（查找是全函数，性能敏感）。

type aliasPair struct {
	Variant   string
	Canonical string
}

// 市级别名：行政前缀（KOTA ADM / KABUPATEN ADM）、历史缩写
var cityAliasPairs = []aliasPair{
	{"Kota Jakarta Barat", "Jakarta Barat"},
	{"Kota Adm Jakarta Barat", "Jakarta Barat"},
	{"Kota Administrasi Jakarta Barat", "Jakarta Barat"},
	{"Adm Jakarta Barat", "Jakarta Barat"},
	{"Jakbar", "Jakarta Barat"},
	{"Kota Jakarta Pusat", "Jakarta Pusat"},
	{"Kota Adm Jakarta Pusat", "Jakarta Pusat"},
	{"Kota Administrasi Jakarta Pusat", "Jakarta Pusat"},
	{"Adm Jakarta Pusat", "Jakarta Pusat"},
	{"Jakpus", "Jakarta Pusat"},
	{"Kota Jakarta Selatan", "Jakarta Selatan"},
	{"Kota Adm Jakarta Selatan", "Jakarta Selatan"},
	{"Kota Administrasi Jakarta Selatan", "Jakarta Selatan"},
	{"Adm Jakarta Selatan", "Jakarta Selatan"},
	{"Jaksel", "Jakarta Selatan"},
	{"Kota Jakarta Timur", "Jakarta Timur"},
	{"Kota Adm Jakarta Timur", "Jakarta Timur"},
	{"Kota Administrasi Jakarta Timur", "Jakarta Timur"},
	{"Adm Jakarta Timur", "Jakarta Timur"},
	{"Jaktim", "Jakarta Timur"},
	{"Kota Jakarta Utara", "Jakarta Utara"},
	{"Kota Adm Jakarta Utara", "Jakarta Utara"},
	{"Kota Administrasi Jakarta Utara", "Jakarta Utara"},
	{"Adm Jakarta Utara", "Jakarta Utara"},
	{"Jakut", "Jakarta Utara"},
	{"Kab Kepulauan Seribu", "Kepulauan Seribu"},
	{"Kab Adm Kepulauan Seribu", "Kepulauan Seribu"},
	{"Kabupaten Adm Kepulauan Seribu", "Kepulauan Seribu"},
	{"Kabupaten Administrasi Kepulauan Seribu", "Kepulauan Seribu"},
	{"Kep Seribu", "Kepulauan Seribu"},
}

// 区级别名：历史拼写（PRIUK/DJATI）、口头简称
var districtAliasPairs = []aliasPair{
	{"Tanjung Priuk", "Tanjung Priok"},
	{"Grogol", "Grogol Petamburan"},
	{"Mampang", "Mampang Prapatan"},
	{"Setia Budhi", "Setiabudi"},
	{"Kramat Djati", "Kramat Jati"},
	{"Makassar", "Makasar"},
	{"Kep Seribu Utara", "Kepulauan Seribu Utara"},
	{"Kep Seribu Selatan", "Kepulauan Seribu Selatan"},
	{"Pulogadung", "Pulo Gadung"},
	{"Kali Deres", "Kalideres"},
}

// 村级别名：政府导出与历史数据中的错拼
var villageAliasPairs = []aliasPair{
	{"Papango", "Papanggo"},
	{"Pal Meriem", "Pal Meriam"},
	{"Kampung Tengah", "Tengah"},
	{"Halim", "Halim Perdana Kusuma"},
	{"Halim Perdanakusuma", "Halim Perdana Kusuma"},
	{"Balekambang", "Bale Kambang"},
	{"Kampung Makassar", "Makasar"},
	{"Pluit Barat", "Pluit"},
	{"Krendang Utara", "Krendang"},
}

type cityDecl struct {
	City      string
	Districts []string
}

// 层级声明：6 个市/县、44 个区；顺序即 DistrictsOf 的返回顺序
// WARNING: 同一区若被声明到两个市，后声明者静默覆盖反向表，由 alias-lint 检出
var hierarchyDecl = []cityDecl{
	{"Jakarta Barat", []string{
		"Cengkareng", "Grogol Petamburan", "Kalideres", "Kebon Jeruk",
		"Kembangan", "Palmerah", "Taman Sari", "Tambora",
	}},
	{"Jakarta Pusat", []string{
		"Cempaka Putih", "Gambir", "Johar Baru", "Kemayoran",
		"Menteng", "Sawah Besar", "Senen", "Tanah Abang",
	}},
	{"Jakarta Selatan", []string{
		"Cilandak", "Jagakarsa", "Kebayoran Baru", "Kebayoran Lama",
		"Mampang Prapatan", "Pancoran", "Pasar Minggu", "Pesanggrahan",
		"Setiabudi", "Tebet",
	}},
	{"Jakarta Timur", []string{
		"Cakung", "Cipayung", "Ciracas", "Duren Sawit",
		"Jatinegara", "Kramat Jati", "Makasar", "Matraman",
		"Pasar Rebo", "Pulo Gadung",
	}},
	{"Jakarta Utara", []string{
		"Cilincing", "Kelapa Gading", "Koja", "Pademangan",
		"Penjaringan", "Tanjung Priok",
	}},
	{"Kepulauan Seribu", []string{
		"Kepulauan Seribu Utara", "Kepulauan Seribu Selatan",
	}},
}
