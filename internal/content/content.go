// Package content holds every user-facing text block, button label and keyboard
// layout of the «Режим здоровья» funnel. It is pure data parameterised by a few URLs.
package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Button labels. Incoming text is matched against these exactly (after trimming).
const (
	BtnConsent     = "✅ Даю согласие"
	BtnPrograms    = "📚 Посмотреть программы"
	BtnSubscribe   = "💳 Оформить подписку"
	BtnRestart     = "🔁 В начало"
	BtnBack        = "⬅️ Назад"
	BtnToMenu      = "⬅️ В меню"
	BtnGoToPayment = "🔗 Перейти к оплате"
	BtnPaid        = "✅ Я оплатил(а)"
	BtnMaterials   = "📎 Перейти к материалам"
)

// CommandStart restarts the funnel from any state.
const CommandStart = "/start"

// placeholderURL is rendered for links that were not configured.
const placeholderURL = "#"

// Links are the external URLs substituted into texts. They are opaque to the catalog.
type Links struct {
	Privacy   string
	Consent   string
	Offer     string
	Payment   string
	Materials string
}

func (l Links) withDefaults() Links {
	pick := func(v string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return placeholderURL
	}
	return Links{
		Privacy:   pick(l.Privacy),
		Consent:   pick(l.Consent),
		Offer:     pick(l.Offer),
		Payment:   pick(l.Payment),
		Materials: pick(l.Materials),
	}
}

// Program is one entry of the programs menu.
type Program struct {
	Title       string
	Description string
}

// Catalog is the resolved set of texts for a given Links configuration.
type Catalog struct {
	Links Links

	Welcome       string
	Consent       string
	ConsentOnly   string
	AskName       string
	AskPhone      string
	AskEmail      string
	NameRejected  string
	PhoneRejected string
	EmailRejected string

	About          string
	ProgramsPrompt string
	BackToMenu     string
	MenuPrompt     string
	ChooseMenu     string

	Subscribe   string
	Pay         string
	PaymentLink string
	AfterPay    string
	Materials   string

	StartOver string
	// SlowDown answers messages dropped by the rate limiter.
	SlowDown string

	programs []Program
	byTitle  map[string]int
}

// New resolves the catalog texts for links. Empty links are rendered as "#".
func New(links Links) *Catalog {
	l := links.withDefaults()
	c := &Catalog{
		Links: l,

		Welcome: "Привет!\n" +
			"Добро пожаловать в сообщество «Режим здоровья» — пространство, где специалисты и семьи объединяются ради главного — " +
			"осознанного подхода к здоровью своей семьи.\n\n" +
			"Здесь мы говорим простым языком о сложном: как сохранить здоровье, внутренний баланс и помочь детям развиваться гармонично.\n\n" +
			"Ведущие проекта:\n" +
			"Анна Абдуллина — врач-нутрициолог, трихолог, эксперт по женскому и детскому здоровью.\n" +
			"Оксана Сафина — психолог, нейропедагог (нейропсихолог, логопед для детей раннего возраста), автор программ по развитию речи " +
			"и мозга для детей.\n\n" +
			"В сообществе вас ждут практические программы, разборы, поддержка и вдохновение — всё, чтобы здоровье стало вашей системой, " +
			"а не случайностью.",

		Consent: "Чтобы мы могли записать ваши ответы и в дальнейшем иметь возможность связаться с вами,\n" +
			"нам необходимо получить ваше согласие с:\n" +
			"• Политикой конфиденциальности: " + l.Privacy + "\n" +
			"• Согласием на обработку персональных данных: " + l.Consent + "\n\n" +
			"Нажмите кнопку ниже:",
		ConsentOnly: "Пожалуйста, нажмите кнопку «" + BtnConsent + "», чтобы продолжить.",

		AskName: "Ответьте, пожалуйста, на несколько вопросов.\n" +
			"Пожалуйста, будьте внимательными к правильности заполняемых данных.\n\n" +
			"1 вопрос из 3:\nКак вас зовут?",
		AskPhone:      "Приятно познакомиться!\n\n2 вопрос из 3:\nВведите ваш номер телефона.",
		AskEmail:      "Отлично, записали.\n\n3 вопрос из 3:\nВведите вашу почту.",
		NameRejected:  "Напишите, пожалуйста, имя (минимум 2 символа).",
		PhoneRejected: "Похоже, номер введён некорректно. Пример: +7 999 123-45-67. Попробуйте ещё раз.",
		EmailRejected: "Похоже, e-mail введён некорректно. Пример: name@gmail.com. Попробуйте ещё раз.",

		About: "Сообщество «Режим здоровья» — это безопасное пространство, где можно разобраться в вопросах здоровья, развития и воспитания детей — " +
			"без хаоса, рекламы и лишней информации.\n\n" +
			"Мы собрали всё, что помогает поддерживать баланс тела и эмоций, укреплять здоровье всей семьи и растить детей осознанно — системно, " +
			"с научным подходом и человеческим языком.\n\n" +
			"В подписке вы получите:\n" +
			"• доступ к обучающим программам и записям курсов\n" +
			"• практические гайды, схемы и чек-листы\n" +
			"• разборы вопросов и материалы по темам сообщества\n\n" +
			"Всё это — в одном месте, без спешки, с любовью к телу и здоровью.",
		ProgramsPrompt: "Выберите направление 👇",
		BackToMenu:     "Возвращаю в меню 👇",
		MenuPrompt:     "Меню 👇",
		ChooseMenu:     "Выберите действие кнопкой 👇",

		Subscribe: "Нажмите кнопку «Оформить подписку», чтобы получить доступ к сообществу «Режим здоровья» — ко всем материалам, программам и поддержке специалистов.\n\n" +
			"Для кого это сообщество:\n" +
			"• для женщин, которые хотят восстановить здоровье, энергию и внутренний баланс\n" +
			"• для мам, которые хотят помочь детям развиваться гармонично\n" +
			"• для специалистов, которые стремятся помогать клиентам комплексно\n\n" +
			"Подписка — ежемесячная.\n" +
			"Отписаться можно в любой момент, без ограничений.",
		Pay: "Стоимость подписки:\n" +
			"1 месяц — 1 499 ₽\n\n" +
			"Перейдите к оплате по кнопке ниже.\n\n" +
			"Оплачивая подписку, вы подтверждаете, что ознакомлены и соглашаетесь с условиями Публичной оферты и Политики конфиденциальности.\n" +
			"Оферта: " + l.Offer + "\n" +
			"Политика: " + l.Privacy,
		PaymentLink: "Оплата по ссылке: " + l.Payment + "\n\nПосле оплаты нажмите «" + BtnPaid + "».",
		AfterPay:    "Добро пожаловать в сообщество «Режим здоровья»!\n\nНажмите кнопку ниже:",
		Materials:   "Материалы: " + l.Materials,

		StartOver: "Напишите " + CommandStart + ", чтобы начать заново.",
		SlowDown:  "Вы пишете слишком быстро. Подождите пару секунд и отправьте сообщение ещё раз.",
	}

	c.programs = []Program{
		placeholderProgram("💇‍♀️", "Трихология и восстановление волос"),
		placeholderProgram("🌺", "Женское здоровье и гормональный баланс"),
		placeholderProgram("🧒", "Детское здоровье"),
		placeholderProgram("🧠", "Развитие речи и мозга у детей"),
		placeholderProgram("🛡️", "Кожа и иммунитет"),
	}
	c.byTitle = make(map[string]int, len(c.programs))
	for i, p := range c.programs {
		c.byTitle[p.Title] = i
	}
	return c
}

// Descriptions are filled in by the editors later; until then every program shows a stub.
func placeholderProgram(icon, name string) Program {
	return Program{
		Title:       icon + " " + name,
		Description: "Описание программы «" + name + "» (добавим текст вручную).",
	}
}

// Programs returns the programs in menu order.
func (c *Catalog) Programs() []Program {
	return append([]Program(nil), c.programs...)
}

// Program looks up a program by its exact button title.
func (c *Catalog) Program(title string) (Program, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Program{}, false
	}
	return c.programs[i], true
}

// AdminNotice renders the plain-text notification sent to the administrator
// when a user completes the intake.
func AdminNotice(name, phone, email, handle string, userID int64) string {
	return fmt.Sprintf(
		"🆕 Новая заявка (Режим здоровья)\n"+
			"Имя: %s\n"+
			"Телефон: %s\n"+
			"Email: %s\n"+
			"TG: %s | id=%s",
		name, phone, email, handle, strconv.FormatInt(userID, 10),
	)
}
