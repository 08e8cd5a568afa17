package notify

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/pvaldas/sprintbot/internal/giphy"
	"github.com/pvaldas/sprintbot/internal/stats"
)

const (
	dispatchTimeout = 15 * time.Second
	membersPageSize = 1000

	gifSearchQuery = "congratulations"
	maxGifOffset   = 2000
)

// CompletionEvent carries everything the notification path needs about a
// freshly persisted completion record.
type CompletionEvent struct {
	Username   string
	SprintCode string
	SprintName string
	Template   string
}

// Dispatcher queues delivery of a completion notification. Implementations
// must not block the caller.
type Dispatcher interface {
	Dispatch(event CompletionEvent)
}

// ChatSession is the subset of the chat platform client the notifier uses.
// *discordgo.Session satisfies it.
type ChatSession interface {
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type GifSearcher interface {
	Search(ctx context.Context, query string, offset, limit int) ([]giphy.Gif, error)
}

// Notifier delivers congratulation messages to the chat platform. Delivery
// is best-effort and at-most-once: failures are counted and logged, never
// retried and never reported to the API caller.
type Notifier struct {
	log     *log.Logger
	session ChatSession
	gifs    GifSearcher
	router  *Router
	guildID string
	stats   stats.StatsProvider
	wg      sync.WaitGroup
}

func NewNotifier(logger *log.Logger, session ChatSession, gifs GifSearcher, router *Router, guildID string, statsProvider stats.StatsProvider) *Notifier {
	statsProvider.RegisterMetric(stats.NotificationsSent)
	statsProvider.RegisterMetric(stats.NotificationsFailed)

	return &Notifier{
		log:     logger,
		session: session,
		gifs:    gifs,
		router:  router,
		guildID: guildID,
		stats:   statsProvider,
	}
}

// Dispatch hands off delivery to a background goroutine and returns
// immediately. The goroutine carries its own bounded timeout, so a slow
// chat platform cannot affect the HTTP response already committed to the
// caller.
func (n *Notifier) Dispatch(event CompletionEvent) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.log.Printf("notify: panic delivering notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := n.deliver(ctx, event); err != nil {
			n.stats.Incr(stats.NotificationsFailed)
			n.log.Printf("notify: %v", err)
			return
		}

		n.stats.Incr(stats.NotificationsSent)
	}()
}

// Shutdown waits for in-flight deliveries to finish.
func (n *Notifier) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) deliver(ctx context.Context, event CompletionEvent) error {
	channelID := n.router.ChannelFor(event.SprintCode)

	// The roster fetch and the gif search have no data dependency, so they
	// run concurrently. Composition needs the roster result.
	var (
		member *discordgo.Member
		gifURL string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := n.guildMembers(gctx)
		if err != nil {
			return newIntegrationError("could not fetch community members", err)
		}

		member = findMember(members, event.Username)
		return nil
	})
	g.Go(func() error {
		url, err := n.searchGif(gctx)
		if err != nil {
			return err
		}

		gifURL = url
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	mention := event.Username
	if member != nil && member.User != nil {
		mention = "<@" + member.User.ID + ">"
	}

	content := Compose(event.Template, event.SprintName, mention)

	if _, err := n.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return newIntegrationError("could not send message to chat platform", err)
	}

	embed := &discordgo.MessageEmbed{
		Image: &discordgo.MessageEmbedImage{URL: gifURL},
	}
	if _, err := n.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return newIntegrationError("could not send message to chat platform", err)
	}

	return nil
}

// guildMembers pages through the guild's full member roster.
func (n *Notifier) guildMembers(ctx context.Context) ([]*discordgo.Member, error) {
	var (
		all   []*discordgo.Member
		after string
	)
	for {
		page, err := n.session.GuildMembers(n.guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < membersPageSize {
			return all, nil
		}

		after = page[len(page)-1].User.ID
	}
}

func (n *Notifier) searchGif(ctx context.Context) (string, error) {
	offset := rand.IntN(maxGifOffset) + 1

	gifs, err := n.gifs.Search(ctx, gifSearchQuery, offset, 1)
	if err != nil {
		return "", newIntegrationError("could not fetch celebration gif", err)
	}
	if len(gifs) == 0 {
		return "", newIntegrationError("could not fetch celebration gif", errors.New("no results"))
	}

	return gifs[0].Images.Original.URL, nil
}

// findMember returns the first member whose display name exactly matches
// username, or nil when there is no match. The match is case-sensitive.
func findMember(members []*discordgo.Member, username string) *discordgo.Member {
	for _, m := range members {
		if memberDisplayName(m) == username {
			return m
		}
	}

	return nil
}

// memberDisplayName mirrors the chat platform's display-name precedence:
// server nickname, then global name, then account username.
func memberDisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}

	return m.User.Username
}
