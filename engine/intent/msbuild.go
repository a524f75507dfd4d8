package intent

import "github.com/msbuild-skills/msbuild-expert/engine/pattern"

// MSBuildCategories returns the MSBuild intent categories in tie-break order.
func MSBuildCategories() []Category {
	return []Category{
		{
			Label:       BuildError,
			Bundle:      "build-errors",
			Description: "Build failure diagnosis",
			Rules: pattern.Compile(string(BuildError),
				`(?i)\berror\b`,
				`(?i)\bfail(ed|ure|s|ing)?\b`,
				`\bCS\d{4}\b`,
				`\bMSB\d{4}\b`,
				`\bNU\d{4}\b`,
				`\bNETSDK\d{4}\b`,
				`\bAD\d{4}\b`,
				`\bCS8785\b`,
				`(?i)\bbuild\s+(fail|broke|broken|error)\b`,
				`(?i)\bfix\s+(this|the|my|a)?\s*(build|error|failure)\b`,
				`(?i)\bwhy\s+(does|is|did)\s+(my\s+)?(build|compilation)\s+fail\b`,
				`(?i)\brestore\s+fail`,
				`(?i)\bpackage\s+not\s+found\b`,
				`(?i)\bcannot\s+resolve\b`,
				`(?i)\bmissing\s+(reference|assembly|package|SDK)\b`,
				`(?i)\bsource\s+generator\b`,
				`(?i)\banalyzer\s+(crash|error|exception|fail)\b`,
			),
		},
		{
			Label:       Performance,
			Bundle:      "performance",
			Description: "Build performance optimization",
			Rules: pattern.Compile(string(Performance),
				`(?i)\bslow\b`,
				`(?i)\bperformance\b`,
				`(?i)\boptimize\b`,
				`(?i)\bspeed\s+up\b`,
				`(?i)\bfaster\b`,
				`(?i)\btoo\s+long\b`,
				`(?i)\bbuild\s+time\b`,
				`(?i)\bbottleneck\b`,
				`(?i)\bincremental\b`,
				`(?i)\bparallel\b`,
				`(?i)\bcaching\b`,
				`(?i)\bgraph\s+build\b`,
				`(?i)\bbinlog\s+(analys|perf)`,
				`(?i)\bwhy\s+(is|does)\s+(my\s+)?build\s+(so\s+)?slow\b`,
			),
		},
		{
			Label:       StyleReview,
			Bundle:      "style-guide",
			Description: "Project file quality and anti-patterns",
			Rules: pattern.Compile(string(StyleReview),
				`(?i)\breview\b`,
				`(?i)\bclean\s*up\b`,
				`(?i)\banti[- ]?pattern\b`,
				`(?i)\bbest\s+practice\b`,
				`(?i)\bstyle\b`,
				`(?i)\bimprove\b`,
				`(?i)\brefactor\b`,
				`(?i)\breadab(le|ility)\b`,
				`(?i)\baudit\b`,
				`(?i)\bcheck\s+(my\s+)?(csproj|project\s+file)\b`,
				`(?i)\bidiomatic\b`,
			),
		},
		{
			Label:       Modernization,
			Bundle:      "modernization",
			Description: "Legacy project modernization",
			Rules: pattern.Compile(string(Modernization),
				`(?i)\bmodernize\b`,
				`(?i)\bmigrat(e|ion)\b`,
				`(?i)\blegacy\b`,
				`(?i)\bold[- ]style\b`,
				`(?i)\bSDK[- ]style\b`,
				`(?i)\bupgrade\b`,
				`(?i)\bconvert\b`,
				`\bPackageReference\b`,
				`(?i)\bpackages\.config\b`,
				`(?i)\bCentral\s+Package\b`,
				`(?i)\bDirectory\.Build\b`,
			),
		},
	}
}

// GeneralCategory is the fallback for messages that match no category.
func GeneralCategory() Category {
	return Category{Label: General, Description: "General MSBuild question"}
}

// NewMSBuild returns the classifier for MSBuild questions.
func NewMSBuild() *Classifier {
	return NewClassifier(GeneralCategory(), MSBuildCategories()...)
}
