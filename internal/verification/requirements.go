package verification

// requirements catalogues what each verification scheme asks for
var requirements = map[Standard][]string{
	StandardVerra: {
		"VCS (Verified Carbon Standard) compliance",
		"Project documentation including monitoring plan",
		"Baseline and monitoring methodology",
		"Evidence of emissions reductions",
		"Third-party validation report",
		"Stakeholder consultation documentation",
	},
	StandardGoldStandard: {
		"Gold Standard certification requirements",
		"Sustainable Development Goals (SDG) impact assessment",
		"Additionality demonstration",
		"Monitoring and verification plan",
		"Environmental and social safeguards",
		"Local stakeholder engagement evidence",
	},
	StandardToituEkos: {
		"Toitu carbonreduce or carbonzero certification",
		"New Zealand emissions factors compliance",
		"Greenhouse gas inventory",
		"Verification to ISO 14064-3",
		"Evidence of emissions reduction activities",
		"Third-party assurance statement",
	},
}

// Requirements returns the documentation a verification scheme requires
func Requirements(standard Standard) []string {
	return requirements[standard]
}
