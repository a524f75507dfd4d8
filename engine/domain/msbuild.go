package domain

import "github.com/msbuild-skills/msbuild-expert/engine/pattern"

var (
	msbuildHigh = pattern.Compile(TierHigh,
		// diagnostic codes
		`\bCS\d{4}\b`,
		`\bMSB\d{4}\b`,
		`\bNU\d{4}\b`,
		`\bNETSDK\d{4}\b`,
		`\bBC\d{4}\b`,
		`\bFS\d{4}\b`,
		`\bAD\d{4}\b`,

		// project and solution files
		`(?i)\.csproj\b`,
		`(?i)\.vbproj\b`,
		`(?i)\.fsproj\b`,
		`(?i)\.sln\b`,
		`(?i)\.slnx\b`,
		`(?i)\.props\b`,
		`(?i)\.targets\b`,
		`(?i)\.binlog\b`,
		`(?i)\.nupkg\b`,

		// CLI
		`(?i)\bdotnet\s+(build|test|pack|publish|restore|run|new|clean)\b`,
		`(?i)\bmsbuild(\.exe)?\b`,

		// project XML
		`(?i)\bSdk\s*=\s*"Microsoft\.NET\.Sdk`,
		`(?i)<PackageReference\b`,
		`(?i)<ProjectReference\b`,
		`(?i)<PropertyGroup\b`,
		`(?i)<ItemGroup\b`,
		`(?i)<Target\b`,

		// well-known files
		`(?i)\bDirectory\.Build\.props\b`,
		`(?i)\bDirectory\.Build\.targets\b`,
		`(?i)\bDirectory\.Packages\.props\b`,
		`(?i)\bglobal\.json\b`,
		`(?i)\bnuget\.config\b`,
	)

	msbuildNegative = pattern.Compile(TierNegative,
		`(?i)\bpackage\.json\b`,
		`(?i)\bnode_modules\b`,
		`(?i)\bnpm\s+(install|run|test)\b`,
		`(?i)\byarn\s+(add|install|run)\b`,
		`(?i)\bwebpack\b`,
		`(?i)\bCargo\.toml\b`,
		`(?i)\bcargo\s+(build|test|run)\b`,
		`(?i)\brustc\b`,
		`(?i)\bpom\.xml\b`,
		`(?i)\bbuild\.gradle\b`,
		`\bMakefile\b`,
		`(?i)\bCMakeLists\.txt\b`,
		`(?i)\bgo\.(mod|sum)\b`,
		`(?i)\bpyproject\.toml\b`,
		`(?i)\bsetup\.py\b`,
		`(?i)\bpip\s+install\b`,
	)

	// ".NET" and "C#" start or end with a non-word character, so a \b on that
	// side would never match in ordinary prose.
	msbuildMedium = pattern.Compile(TierMedium,
		`\.NET\b`,
		`(?i)\bNuGet\b`,
		`(?i)\bC#`,
		`(?i)\bcsproj\b`,
		`(?i)\bVisual Studio\b`,
		`(?i)\bsolution\b`,
		`(?i)\bassembly\b`,
		`(?i)\bpackage\s+reference\b`,
		`(?i)\btarget\s+framework\b`,
		`\bTFM\b`,
	)
)

// MSBuildTiers returns the pattern tables for the MSBuild/.NET build domain.
func MSBuildTiers() Tiers {
	return Tiers{
		High:     msbuildHigh,
		Negative: msbuildNegative,
		Medium:   msbuildMedium,
	}
}
