package taxonomy

// Default returns the built-in moderation taxonomy. The rule set is the
// compatibility baseline for callers: category, tag, and rule order are all
// part of the contract.
func Default() *Taxonomy {
	return &Taxonomy{Categories: []Category{
		{Name: CategoryContentWarning, Tags: []Tag{
			{Name: "NSFW", Rules: []Rule{
				mustRule(`\b(nsfw|not safe for work|adult content|explicit|sexual|nude|naked|porn|xxx)\b`),
				mustRule(`\b(18\+|mature content|adult only)\b`),
			}},
			{Name: "Violence", Rules: []Rule{
				mustRule(`\b(violence|violent|kill|murder|death|blood|gore|fight|attack|assault|weapon|gun|knife|bomb)\b`),
				mustRule(`\b(war|battle|shooting|stabbing|beating|torture)\b`),
			}},
			{Name: "Sensitive", Rules: []Rule{
				mustRule(`\b(trigger|triggering|sensitive|depression|anxiety|suicide|self harm|mental health)\b`),
				mustRule(`\b(trauma|ptsd|abuse|eating disorder|addiction)\b`),
			}},
			{Name: "Spoiler", Rules: []Rule{
				mustRule(`\b(spoiler|spoilers|plot twist|ending|finale|dies|death scene)\b`),
				mustRule(`\b(season \d+|episode \d+|chapter \d+).*\b(reveals?|twist|surprise)\b`),
			}},
		}},
		{Name: CategoryViolation, Tags: []Tag{
			{Name: "Harassment", Rules: []Rule{
				mustRule(`\b(harass|harassment|bully|bullying|intimidate|threaten|stalk|stalking)\b`),
				mustRule(`\b(you suck|kill yourself|kys|loser|idiot|stupid|moron)\b`),
			}},
			{Name: "Hate Speech", Rules: []Rule{
				mustRule(`\b(hate|racist|racism|sexist|sexism|homophobic|transphobic|bigot|nazi)\b`),
				mustRule(`\b(slur|offensive|discriminat|prejudice)\b`),
			}},
			{Name: "Misinformation", Rules: []Rule{
				mustRule(`\b(fake news|conspiracy|hoax|lie|lies|false|misinformation|disinformation)\b`),
				mustRule(`\b(covid.*fake|vaccine.*dangerous|election.*stolen)\b`),
			}},
		}},
		{Name: CategoryQuality, Tags: []Tag{
			{Name: "Spam", Rules: []Rule{
				mustRule(`\b(buy now|click here|free money|get rich|make money fast|limited time)\b`),
				mustRule(`\b(viagra|casino|lottery|winner|congratulations.*won)\b`),
				mustRule(`(http[s]?://[^\s]+){3,}`), // three or more links
				repeatRule{minRun: 11},              // a run of 11+ identical characters
			}},
			{Name: "Low Quality", Rules: []Rule{
				mustRule(`^.{1,10}$`),     // very short posts
				mustRule(`^[^a-zA-Z]*$`),  // no letters at all
				mustRule(`\b(first|second|third|fourth|fifth)\b$`),
			}},
		}},
		{Name: CategorySafety, Tags: []Tag{
			{Name: "Self Harm", Rules: []Rule{
				mustRule(`\b(suicide|kill myself|end it all|self harm|cut myself|overdose|jump off)\b`),
				mustRule(`\b(want to die|better off dead|no point living|end my life)\b`),
			}},
			{Name: "Doxxing", Rules: []Rule{
				mustRule(`\b\d{3}-\d{3}-\d{4}\b`), // US-style phone numbers
				mustRule(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
				mustRule(`\b\d{1,5}\s+\w+\s+(street|st|avenue|ave|road|rd|drive|dr|lane|ln|boulevard|blvd)\b`),
				mustRule(`\b(home address|phone number|social security|ssn|credit card)\b`),
			}},
		}},
	}}
}
