package catalog

// Katalog statis bab NCERT untuk NEET (physics/chemistry/biology, class11/class12).
// Immutable — dimuat sekali saat proses start, tidak ada mutasi dinamis.

type Chapter struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// ChapterRef mengidentifikasi satu unit kerja generate.
type ChapterRef struct {
	Subject     string `json:"subject"`
	ClassLevel  string `json:"class_level"`
	ChapterID   string `json:"chapter_id"`
	ChapterName string `json:"chapter_name"`
}

var subjectsData = map[string]map[string][]Chapter{
	"physics": {
		"class11": {
			{ID: "chapter-1-physical-world", Name: "Physical World", Number: 1},
			{ID: "chapter-2-units-and-measurements", Name: "Units and Measurements", Number: 2},
			{ID: "chapter-3-motion-in-a-straight-line", Name: "Motion in a Straight Line", Number: 3},
			{ID: "chapter-4-motion-in-a-plane", Name: "Motion in a Plane", Number: 4},
			{ID: "chapter-5-laws-of-motion", Name: "Laws of Motion", Number: 5},
			{ID: "chapter-6-work-energy-and-power", Name: "Work, Energy and Power", Number: 6},
			{ID: "chapter-7-system-of-particles-and-rotational-motion", Name: "System of Particles and Rotational Motion", Number: 7},
			{ID: "chapter-8-gravitation", Name: "Gravitation", Number: 8},
			{ID: "chapter-9-mechanical-properties-of-solids", Name: "Mechanical Properties of Solids", Number: 9},
			{ID: "chapter-10-mechanical-properties-of-fluids", Name: "Mechanical Properties of Fluids", Number: 10},
			{ID: "chapter-11-thermal-properties-of-matter", Name: "Thermal Properties of Matter", Number: 11},
			{ID: "chapter-12-thermodynamics", Name: "Thermodynamics", Number: 12},
			{ID: "chapter-13-kinetic-theory", Name: "Kinetic Theory", Number: 13},
			{ID: "chapter-14-oscillations", Name: "Oscillations", Number: 14},
			{ID: "chapter-15-waves", Name: "Waves", Number: 15},
		},
		"class12": {
			{ID: "chapter-1-electric-charges-and-fields", Name: "Electric Charges and Fields", Number: 1},
			{ID: "chapter-2-electrostatic-potential-and-capacitance", Name: "Electrostatic Potential and Capacitance", Number: 2},
			{ID: "chapter-3-current-electricity", Name: "Current Electricity", Number: 3},
			{ID: "chapter-4-moving-charges-and-magnetism", Name: "Moving Charges and Magnetism", Number: 4},
			{ID: "chapter-5-magnetism-and-matter", Name: "Magnetism and Matter", Number: 5},
			{ID: "chapter-6-electromagnetic-induction", Name: "Electromagnetic Induction", Number: 6},
			{ID: "chapter-7-alternating-current", Name: "Alternating Current", Number: 7},
			{ID: "chapter-8-electromagnetic-waves", Name: "Electromagnetic Waves", Number: 8},
			{ID: "chapter-9-ray-optics-and-optical-instruments", Name: "Ray Optics and Optical Instruments", Number: 9},
			{ID: "chapter-10-wave-optics", Name: "Wave Optics", Number: 10},
			{ID: "chapter-11-dual-nature-of-radiation-and-matter", Name: "Dual Nature of Radiation and Matter", Number: 11},
			{ID: "chapter-12-atoms", Name: "Atoms", Number: 12},
			{ID: "chapter-13-nuclei", Name: "Nuclei", Number: 13},
			{ID: "chapter-14-semiconductor-electronics", Name: "Semiconductor Electronics", Number: 14},
		},
	},
	"chemistry": {
		"class11": {
			{ID: "chapter-1-some-basic-concepts-of-chemistry", Name: "Some Basic Concepts of Chemistry", Number: 1},
			{ID: "chapter-2-structure-of-atom", Name: "Structure of Atom", Number: 2},
			{ID: "chapter-3-classification-of-elements-and-periodicity", Name: "Classification of Elements and Periodicity in Properties", Number: 3},
			{ID: "chapter-4-chemical-bonding-and-molecular-structure", Name: "Chemical Bonding and Molecular Structure", Number: 4},
			{ID: "chapter-5-states-of-matter", Name: "States of Matter", Number: 5},
			{ID: "chapter-6-thermodynamics", Name: "Thermodynamics", Number: 6},
			{ID: "chapter-7-equilibrium", Name: "Equilibrium", Number: 7},
			{ID: "chapter-8-redox-reactions", Name: "Redox Reactions", Number: 8},
			{ID: "chapter-9-hydrogen", Name: "Hydrogen", Number: 9},
			{ID: "chapter-10-the-s-block-elements", Name: "The s-Block Elements", Number: 10},
			{ID: "chapter-11-the-p-block-elements", Name: "The p-Block Elements", Number: 11},
			{ID: "chapter-12-organic-chemistry-basic-principles", Name: "Organic Chemistry: Some Basic Principles and Techniques", Number: 12},
			{ID: "chapter-13-hydrocarbons", Name: "Hydrocarbons", Number: 13},
			{ID: "chapter-14-environmental-chemistry", Name: "Environmental Chemistry", Number: 14},
		},
		"class12": {
			{ID: "chapter-1-the-solid-state", Name: "The Solid State", Number: 1},
			{ID: "chapter-2-solutions", Name: "Solutions", Number: 2},
			{ID: "chapter-3-electrochemistry", Name: "Electrochemistry", Number: 3},
			{ID: "chapter-4-chemical-kinetics", Name: "Chemical Kinetics", Number: 4},
			{ID: "chapter-5-surface-chemistry", Name: "Surface Chemistry", Number: 5},
			{ID: "chapter-6-the-d-and-f-block-elements", Name: "The d- and f-Block Elements", Number: 6},
			{ID: "chapter-7-coordination-compounds", Name: "Coordination Compounds", Number: 7},
			{ID: "chapter-8-haloalkanes-and-haloarenes", Name: "Haloalkanes and Haloarenes", Number: 8},
			{ID: "chapter-9-alcohols-phenols-and-ethers", Name: "Alcohols, Phenols and Ethers", Number: 9},
			{ID: "chapter-10-aldehydes-ketones-and-carboxylic-acids", Name: "Aldehydes, Ketones and Carboxylic Acids", Number: 10},
			{ID: "chapter-11-amines", Name: "Amines", Number: 11},
			{ID: "chapter-12-biomolecules", Name: "Biomolecules", Number: 12},
		},
	},
	"biology": {
		"class11": {
			{ID: "chapter-1-the-living-world", Name: "The Living World", Number: 1},
			{ID: "chapter-2-biological-classification", Name: "Biological Classification", Number: 2},
			{ID: "chapter-3-plant-kingdom", Name: "Plant Kingdom", Number: 3},
			{ID: "chapter-4-animal-kingdom", Name: "Animal Kingdom", Number: 4},
			{ID: "chapter-5-morphology-of-flowering-plants", Name: "Morphology of Flowering Plants", Number: 5},
			{ID: "chapter-6-anatomy-of-flowering-plants", Name: "Anatomy of Flowering Plants", Number: 6},
			{ID: "chapter-7-structural-organisation-in-animals", Name: "Structural Organisation in Animals", Number: 7},
			{ID: "chapter-8-cell-the-unit-of-life", Name: "Cell: The Unit of Life", Number: 8},
			{ID: "chapter-9-biomolecules", Name: "Biomolecules", Number: 9},
			{ID: "chapter-10-cell-cycle-and-cell-division", Name: "Cell Cycle and Cell Division", Number: 10},
			{ID: "chapter-11-photosynthesis-in-higher-plants", Name: "Photosynthesis in Higher Plants", Number: 11},
			{ID: "chapter-12-respiration-in-plants", Name: "Respiration in Plants", Number: 12},
			{ID: "chapter-13-body-fluids-and-circulation", Name: "Body Fluids and Circulation", Number: 13},
			{ID: "chapter-14-excretory-products-and-their-elimination", Name: "Excretory Products and their Elimination", Number: 14},
			{ID: "chapter-15-neural-control-and-coordination", Name: "Neural Control and Coordination", Number: 15},
		},
		"class12": {
			{ID: "chapter-1-reproduction-in-organisms", Name: "Reproduction in Organisms", Number: 1},
			{ID: "chapter-2-sexual-reproduction-in-flowering-plants", Name: "Sexual Reproduction in Flowering Plants", Number: 2},
			{ID: "chapter-3-human-reproduction", Name: "Human Reproduction", Number: 3},
			{ID: "chapter-4-reproductive-health", Name: "Reproductive Health", Number: 4},
			{ID: "chapter-5-principles-of-inheritance-and-variation", Name: "Principles of Inheritance and Variation", Number: 5},
			{ID: "chapter-6-molecular-basis-of-inheritance", Name: "Molecular Basis of Inheritance", Number: 6},
			{ID: "chapter-7-evolution", Name: "Evolution", Number: 7},
			{ID: "chapter-8-human-health-and-disease", Name: "Human Health and Disease", Number: 8},
			{ID: "chapter-9-microbes-in-human-welfare", Name: "Microbes in Human Welfare", Number: 9},
			{ID: "chapter-10-biotechnology-principles-and-processes", Name: "Biotechnology: Principles and Processes", Number: 10},
			{ID: "chapter-11-biotechnology-and-its-applications", Name: "Biotechnology and its Applications", Number: 11},
			{ID: "chapter-12-organisms-and-populations", Name: "Organisms and Populations", Number: 12},
			{ID: "chapter-13-ecosystem", Name: "Ecosystem", Number: 13},
			{ID: "chapter-14-biodiversity-and-conservation", Name: "Biodiversity and Conservation", Number: 14},
		},
	},
}

func Subjects() []string {
	return []string{"physics", "chemistry", "biology"}
}

func ClassLevels() []string {
	return []string{"class11", "class12"}
}

func ValidSubject(subject string) bool {
	_, ok := subjectsData[subject]
	return ok
}

func ValidClassLevel(classLevel string) bool {
	return classLevel == "class11" || classLevel == "class12"
}

// Chapters mengembalikan daftar bab sesuai urutan katalog.
func Chapters(subject, classLevel string) []Chapter {
	levels, ok := subjectsData[subject]
	if !ok {
		return nil
	}
	return levels[classLevel]
}

// Find mencari satu bab; ok=false kalau tidak ada di katalog.
func Find(subject, classLevel, chapterID string) (ChapterRef, bool) {
	for _, ch := range Chapters(subject, classLevel) {
		if ch.ID == chapterID {
			return ChapterRef{
				Subject:     subject,
				ClassLevel:  classLevel,
				ChapterID:   ch.ID,
				ChapterName: ch.Name,
			}, true
		}
	}
	return ChapterRef{}, false
}

// TotalChapters menghitung seluruh bab di katalog (untuk dashboard admin).
func TotalChapters() int {
	total := 0
	for _, levels := range subjectsData {
		for _, chapters := range levels {
			total += len(chapters)
		}
	}
	return total
}
