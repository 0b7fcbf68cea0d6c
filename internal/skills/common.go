package skills

import "strings"

// commonWords are capitalised words and abbreviations that show up in
// résumés but are never skills or organisation names on their own.
var commonWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		a an and the of for with at in on to from by or as is are was were be
		i me my we our you your he she they it this that these those
		etc e.g i.e eg ie vs n/a na
		resume résumé cv curriculum vitae page
		summary profile objective experience education skills projects project
		languages interests hobbies references contact work employment
		january february march april may june july august september october
		november december jan feb mar apr jun jul aug sep sept oct nov dec
		present current now today ongoing
		english french spanish german arabic italian chinese russian portuguese
		native fluent intermediate beginner advanced basic proficient
		mr mrs ms dr phone email e-mail tel mobile address linkedin website
		university college school institute academy
		bachelor master masters phd doctorate degree diploma certificate
		b.sc m.sc b.a m.a b.s m.s bsc msc mba
		senior junior lead intern internship trainee assistant
		team company inc ltd llc corp sa sarl gmbh
		responsible responsibilities achievements duties
		new other various several many more most
		monday tuesday wednesday thursday friday saturday sunday
		mcdonald's youtube instagram facebook twitter
	`) {
		commonWords[w] = true
	}
}

// IsCommonWord reports whether s is a stop word in the résumé sense.
func IsCommonWord(s string) bool {
	return commonWords[strings.ToLower(strings.Trim(s, ".,;:"))]
}
