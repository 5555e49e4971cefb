package crawler

import (
	"context"
	"fmt"
	"sync"

	"github.com/Olyastel/Site-parsing/internal/browser"
)

const testBaseURL = "https://court.test/about/structure/"

// fakeSite serves in-memory pages to the static browser.
type fakeSite struct {
	pages map[string]string

	// slow lists URLs whose fetch times out.
	slow map[string]bool

	mu     sync.Mutex
	visits map[string]int
}

func (f *fakeSite) Fetch(_ context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	if f.visits == nil {
		f.visits = make(map[string]int)
	}
	f.visits[url]++
	f.mu.Unlock()

	if f.slow[url] {
		return nil, "", fmt.Errorf("fetching %s: %w", url, browser.ErrTimeout)
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, "", fmt.Errorf("fetching %s: unexpected status code: 404", url)
	}
	return []byte(body), url, nil
}

func (f *fakeSite) visited(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visits[url]
}

// tabCounter wraps a browser and counts opened and closed profile tabs.
type tabCounter struct {
	browser.Browser

	mu     sync.Mutex
	opened int
	closed int
}

func (t *tabCounter) Page(ctx context.Context) (browser.Page, error) {
	p, err := t.Browser.Page(ctx)
	if err != nil {
		return nil, err
	}
	return &countedPage{Page: p, counter: t}, nil
}

type countedPage struct {
	browser.Page
	counter *tabCounter
}

func (p *countedPage) OpenTab(ctx context.Context) (browser.Page, error) {
	tab, err := p.Page.OpenTab(ctx)
	if err != nil {
		return nil, err
	}
	p.counter.mu.Lock()
	p.counter.opened++
	p.counter.mu.Unlock()
	return &countedPage{Page: tab, counter: p.counter}, nil
}

func (p *countedPage) Close() error {
	p.counter.mu.Lock()
	p.counter.closed++
	p.counter.mu.Unlock()
	return p.Page.Close()
}

// panicBrowser returns a main tab whose navigation panics, like a driver
// that crashes mid-run.
type panicBrowser struct{}

func (panicBrowser) Page(context.Context) (browser.Page, error) { return panicPage{}, nil }
func (panicBrowser) Close() error                              { return nil }

type panicPage struct {
	browser.Page
}

func (panicPage) Navigate(context.Context, string) error { panic("devtools connection lost") }

const listingPage = `<html><body>
<table class="vs-tabs"><tr>
  <td><a href="/about/structure/?section=1" data-code="1">Судебная
      коллегия   по делам</a></td>
  <td><a href="/about/structure/?section=2" data-code="2">Президиум</a></td>
</tr></table>
</body></html>`

const sectionOnePage = `<html><body>
<div id="vs-structure-menu-dynamic">
  <a href="/about/structure/?section=1&amp;subsection=11">Первый состав</a>
  <a href="/about/structure/?section=1&amp;subsection=12#top">Второй состав</a>
  <a href="/about/news/">Новости</a>
</div>
</body></html>`

const sectionTwoPage = `<html><body>
<div class="vs-structure-list-persons">
  <div class="clearfix">
    <div class="vs-structure-list-persons-photo"><img src="/upload/p4.jpg"></div>
    <h2><a>Сидоров Пётр Петрович</a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
  <div class="clearfix">
    <h2><a href="/judges/5/">Без Фото</a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
  <div class="clearfix">
    <div class="vs-structure-list-persons-photo"><img src="/upload/p6.jpg"></div>
    <h2><a href="/judges/6/">   </a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
</div>
</body></html>`

const subsectionElevenPage = `<html><body>
<div class="vs-structure-list-persons">
  <div class="clearfix">
    <div class="vs-structure-list-persons-photo"><img src="/upload/p1.jpg"></div>
    <h2><a href="/judges/1/">Иванов
        Иван Иванович</a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
  <div class="clearfix">
    <div class="vs-structure-list-persons-photo"><img src="https://cdn.court.test/p2.jpg"></div>
    <h2><a href="/judges/2/">Петрова Анна Сергеевна</a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
  <div class="clearfix">
    <div class="vs-structure-list-persons-photo"><img src="/upload/p3.jpg"></div>
    <h2><a href="/judges/3/">Смирнов Олег Юрьевич</a></h2>
    <div class="vs-structure-list-persons-position">Судья</div>
  </div>
</div>
</body></html>`

const subsectionTwelvePage = `<html><body><p>Состав формируется.</p></body></html>`

const profileOnePage = `<html><body>
<h1 class="vs-person-detail-name">Иванов Иван Иванович</h1>
<div class="vs-person-detail-position">Председатель судебного состава</div>
<p>Имеет высший Квалификационный класс судьи.</p>
<p>Назначен Постановлением Совета Федерации от 1 июня 2015 года.</p>
<div class="vs-person-detail-career-item">
  <span class="vs-person-detail-career-item-year">1995</span>
  <span class="vs-person-detail-career-item-text">Судья районного суда</span>
</div>
<div class="vs-person-detail-career-item">
  <span class="vs-person-detail-career-item-text">Без года</span>
</div>
<div class="vs-person-detail-career-item">
  <span class="vs-person-detail-career-item-year">2015</span>
  <span class="vs-person-detail-career-item-text">Судья
      Верховного Суда</span>
</div>
<div class="vs-person-detail-education">МГУ имени М. В. Ломоносова, 1990</div>
<div class="vs-person-detail-awards">Почётная грамота</div>
</body></html>`

const profileTwoPage = `<html><body>
<h1 class="vs-person-detail-name">Петрова Анна Сергеевна</h1>
<div class="vs-person-detail-position">Судья</div>
<p>Первый квалификационный класс.</p>
<div class="vs-person-detail-education">СПбГУ, 2001</div>
</body></html>`

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages: map[string]string{
			testBaseURL: listingPage,
			"https://court.test/about/structure/?section=1":                  sectionOnePage,
			"https://court.test/about/structure/?section=2":                  sectionTwoPage,
			"https://court.test/about/structure/?section=1&subsection=11":    subsectionElevenPage,
			"https://court.test/about/structure/?section=1&subsection=12#top": subsectionTwelvePage,
			"https://court.test/judges/1/":                                   profileOnePage,
			"https://court.test/judges/2/":                                   profileTwoPage,
		},
		slow: map[string]bool{
			"https://court.test/judges/3/": true,
		},
	}
}
